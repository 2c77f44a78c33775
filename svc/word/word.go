package word

import "time"

// Category groups vocabulary by programming topic.
type Category string

const (
	CategoryBasic          Category = "basic"
	CategoryControlFlow    Category = "control_flow"
	CategoryDataStructure  Category = "data_structure"
	CategoryObjectOriented Category = "object_oriented"
	CategoryFunction       Category = "function"
	CategoryErrorHandling  Category = "error_handling"
)

// Categories lists every accepted category.
var Categories = []Category{
	CategoryBasic,
	CategoryControlFlow,
	CategoryDataStructure,
	CategoryObjectOriented,
	CategoryFunction,
	CategoryErrorHandling,
}

// Difficulty is the learner level a word targets.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists every accepted difficulty.
var Difficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

// Word is a vocabulary entry.
type Word struct {
	ID            int64      `db:"id" json:"id"`
	Word          string     `db:"word" json:"word"`
	Translation   string     `db:"translation" json:"translation"`
	Definition    string     `db:"definition" json:"definition"`
	Example       string     `db:"example" json:"example"`
	Category      Category   `db:"category" json:"category"`
	Difficulty    Difficulty `db:"difficulty" json:"difficulty"`
	Pronunciation *string    `db:"pronunciation" json:"pronunciation"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// CreateInput holds the fields of a new word. Empty category and
// difficulty fall back to basic and beginner.
type CreateInput struct {
	Word          string
	Translation   string
	Definition    string
	Example       string
	Category      Category
	Difficulty    Difficulty
	Pronunciation *string
}

// UpdateInput changes only the non-nil fields.
type UpdateInput struct {
	Word          *string
	Translation   *string
	Definition    *string
	Example       *string
	Category      *Category
	Difficulty    *Difficulty
	Pronunciation *string
}

// Filter narrows List queries. Zero values match everything.
type Filter struct {
	Category   Category
	Difficulty Difficulty
}
