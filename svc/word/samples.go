package word

import "math/rand/v2"

// Sample is an entry of the built-in word list served by the legacy endpoints.
type Sample struct {
	ID          int    `json:"id"`
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Example     string `json:"example"`
}

var samples = []Sample{
	{ID: 1, Word: "variable", Translation: "变量", Example: "let x = 10;"},
	{ID: 2, Word: "function", Translation: "函数", Example: "function hello() { return 'Hello'; }"},
	{ID: 3, Word: "array", Translation: "数组", Example: "const arr = [1, 2, 3];"},
	{ID: 4, Word: "object", Translation: "对象", Example: "const obj = { name: 'John' };"},
	{ID: 5, Word: "class", Translation: "类", Example: "class Person { constructor() {} }"},
	{ID: 6, Word: "method", Translation: "方法", Example: "obj.toString()"},
	{ID: 7, Word: "property", Translation: "属性", Example: "obj.name"},
	{ID: 8, Word: "loop", Translation: "循环", Example: "for(let i = 0; i < 10; i++) {}"},
	{ID: 9, Word: "condition", Translation: "条件", Example: "if (x > 0) {}"},
	{ID: 10, Word: "exception", Translation: "异常", Example: "try {} catch(e) {}"},
}

// Samples returns a copy of the built-in word list.
func Samples() []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	return out
}

// RandomSample picks one entry of the built-in word list.
func RandomSample() Sample {
	return samples[rand.IntN(len(samples))]
}
