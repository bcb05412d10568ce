package validation

import (
	"regexp"
	"strings"

	"expert-test/internal/domain"
	"expert-test/internal/dto"
)

const (
	maxQuestionTextLen = 2000
	maxAnswerTextLen   = 1000
	maxCompetenceLen   = 100
	minPasswordLen     = 6
	maxUsernameLen     = 50
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSaveResults checks that both arrays are present. Empty arrays are
// accepted and score as a zero-question attempt.
func (v *Validator) ValidateSaveResults(req *dto.SaveResultsRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Answers == nil {
		errors = append(errors, domain.NewMissingFieldError("answers"))
	}
	if req.Questions == nil {
		errors = append(errors, domain.NewMissingFieldError("questions"))
	}

	for _, a := range req.Answers {
		if a.QuestionID <= 0 {
			errors = append(errors, domain.NewInvalidFormatError("answers.questionId", a.QuestionID))
		}
	}
	for _, q := range req.Questions {
		if q.ID <= 0 {
			errors = append(errors, domain.NewInvalidFormatError("questions.id", q.ID))
		}
	}

	return errors
}

// ValidateQuestion validates question create and update bodies and returns
// the resolved question type.
func (v *Validator) ValidateQuestion(req *dto.QuestionRequest) (domain.QuestionType, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	text := strings.TrimSpace(req.QuestionText)
	if text == "" {
		errors = append(errors, domain.NewMissingFieldError("question_text"))
	} else if len(text) > maxQuestionTextLen {
		errors = append(errors, domain.NewOutOfRangeError("question_text", len(text), 1, maxQuestionTextLen))
	}

	competence := strings.TrimSpace(req.Competence)
	if competence == "" {
		errors = append(errors, domain.NewMissingFieldError("competence"))
	} else if len(competence) > maxCompetenceLen {
		errors = append(errors, domain.NewOutOfRangeError("competence", len(competence), 1, maxCompetenceLen))
	}

	qType, ok := domain.ParseQuestionType(req.QuestionType)
	if !ok {
		errors = append(errors, domain.NewInvalidValueError("question_type",
			"question_type must be single_choice or multiple_choice", req.QuestionType))
	}

	return qType, errors
}

// ValidateAnswer validates answer bodies. The question reference is only
// required on create.
func (v *Validator) ValidateAnswer(req *dto.AnswerRequest, requireQuestion bool) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if requireQuestion && req.QuestionID <= 0 {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	}

	text := strings.TrimSpace(req.AnswerText)
	if text == "" {
		errors = append(errors, domain.NewMissingFieldError("answer_text"))
	} else if len(text) > maxAnswerTextLen {
		errors = append(errors, domain.NewOutOfRangeError("answer_text", len(text), 1, maxAnswerTextLen))
	}

	return errors
}

func (v *Validator) ValidateRegister(req *dto.RegisterRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	} else if len(username) > maxUsernameLen {
		errors = append(errors, domain.NewOutOfRangeError("username", len(username), 1, maxUsernameLen))
	}

	errors = append(errors, validateEmail(req.Email)...)

	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(req.Password) < minPasswordLen {
		errors = append(errors, domain.NewInvalidValueError("password",
			"password must be at least 6 characters", nil))
	}

	return errors
}

func (v *Validator) ValidateLogin(req *dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	}
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

func validateEmail(email string) domain.ValidationErrors {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("email")}
	}
	if !emailPattern.MatchString(email) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("email", email)}
	}
	return nil
}
