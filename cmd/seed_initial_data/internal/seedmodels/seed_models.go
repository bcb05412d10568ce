package seedmodels

// SeedAnswer is one answer option in the JSON seed file.
type SeedAnswer struct {
	Text      string `json:"answer_text"`
	IsCorrect bool   `json:"is_correct"`
}

// SeedQuestion is one question with its options. QuestionType may be
// omitted and then defaults to single_choice.
type SeedQuestion struct {
	Text         string       `json:"question_text"`
	Competence   string       `json:"competence"`
	QuestionType string       `json:"question_type"`
	Answers      []SeedAnswer `json:"answers"`
}

// SeedFile is the root of the JSON seed file.
type SeedFile struct {
	Questions []SeedQuestion `json:"questions"`
}
