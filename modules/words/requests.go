package words

import (
	"github.com/dmitrymomot/progenglish/svc/word"
)

type pageQuery struct {
	Page *int `query:"page"`
	Size *int `query:"size"`
}

func (q pageQuery) values() (page, size int) {
	page, size = 1, word.DefaultPageSize
	if q.Page != nil {
		page = *q.Page
	}
	if q.Size != nil {
		size = *q.Size
	}
	return page, size
}

type idPath struct {
	ID int64 `path:"id"`
}

// The binder does not descend into embedded structs, so the paging fields
// are repeated here.
type categoryRequest struct {
	Category word.Category `path:"category"`
	Page     *int          `query:"page"`
	Size     *int          `query:"size"`
}

type difficultyRequest struct {
	Difficulty word.Difficulty `path:"difficulty"`
	Page       *int            `query:"page"`
	Size       *int            `query:"size"`
}

type createRequest struct {
	Word          string          `json:"word"`
	Translation   string          `json:"translation"`
	Definition    string          `json:"definition"`
	Example       string          `json:"example"`
	Category      word.Category   `json:"category"`
	Difficulty    word.Difficulty `json:"difficulty"`
	Pronunciation *string         `json:"pronunciation"`
}

func (r createRequest) input() word.CreateInput {
	return word.CreateInput{
		Word:          r.Word,
		Translation:   r.Translation,
		Definition:    r.Definition,
		Example:       r.Example,
		Category:      r.Category,
		Difficulty:    r.Difficulty,
		Pronunciation: r.Pronunciation,
	}
}

type updateRequest struct {
	ID            int64            `path:"id" json:"-"`
	Word          *string          `json:"word"`
	Translation   *string          `json:"translation"`
	Definition    *string          `json:"definition"`
	Example       *string          `json:"example"`
	Category      *word.Category   `json:"category"`
	Difficulty    *word.Difficulty `json:"difficulty"`
	Pronunciation *string          `json:"pronunciation"`
}

func (r updateRequest) input() word.UpdateInput {
	return word.UpdateInput{
		Word:          r.Word,
		Translation:   r.Translation,
		Definition:    r.Definition,
		Example:       r.Example,
		Category:      r.Category,
		Difficulty:    r.Difficulty,
		Pronunciation: r.Pronunciation,
	}
}
