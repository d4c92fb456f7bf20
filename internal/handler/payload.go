package handler

import (
	"time"

	"github.com/devlinkhq/devlink/internal/model"
	"github.com/devlinkhq/devlink/internal/usecase"
)

type signUpRequest struct {
	Name            string `json:"name"            validate:"required,min=2,max=30"`
	Email           string `json:"email"           validate:"required,email,max=50"`
	Password        string `json:"password"        validate:"required,min=6,max=50"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password"        validate:"required,min=6,max=50"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type updatePasswordRequest struct {
	OldPassword        string `json:"oldPassword"        validate:"required"`
	NewPassword        string `json:"newPassword"        validate:"required,min=6,max=50"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required,eqfield=NewPassword"`
}

type profileRequest struct {
	Handle         string       `json:"handle"         validate:"required,max=40"`
	Company        *string      `json:"company"`
	Website        *string      `json:"website"        validate:"omitempty,url"`
	Location       *string      `json:"location"`
	Status         string       `json:"status"         validate:"required"`
	Skills         []string     `json:"skills"         validate:"required,min=1,dive,required"`
	Bio            *string      `json:"bio"`
	GithubUsername *string      `json:"githubUsername"`
	Social         *socialLinks `json:"social"`
}

type socialLinks struct {
	Youtube   string `json:"youtube"   validate:"omitempty,url"`
	Twitter   string `json:"twitter"   validate:"omitempty,url"`
	Facebook  string `json:"facebook"  validate:"omitempty,url"`
	Linkedin  string `json:"linkedin"  validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
}

func (p *profileRequest) toParams() usecase.ProfileParams {
	params := usecase.ProfileParams{
		Handle:         p.Handle,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         p.Skills,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
	}
	if p.Social != nil {
		params.Social = &model.Social{
			Youtube:   p.Social.Youtube,
			Twitter:   p.Social.Twitter,
			Facebook:  p.Social.Facebook,
			Linkedin:  p.Social.Linkedin,
			Instagram: p.Social.Instagram,
		}
	}

	return params
}

type experienceRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Company     string     `json:"company"     validate:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"        validate:"required"`
	To          *time.Time `json:"to"          validate:"required_if=Current false"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

func (e *experienceRequest) toModel() model.Experience {
	return model.Experience{
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		From:        e.From,
		To:          e.To,
		Current:     e.Current,
		Description: e.Description,
	}
}

type educationRequest struct {
	School       string     `json:"school"       validate:"required"`
	Degree       string     `json:"degree"       validate:"required"`
	FieldOfStudy string     `json:"fieldOfStudy" validate:"required"`
	From         time.Time  `json:"from"         validate:"required"`
	To           *time.Time `json:"to"           validate:"required_if=Current false"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

func (e *educationRequest) toModel() model.Education {
	return model.Education{
		School:       e.School,
		Degree:       e.Degree,
		FieldOfStudy: e.FieldOfStudy,
		From:         e.From,
		To:           e.To,
		Current:      e.Current,
		Description:  e.Description,
	}
}

type postRequest struct {
	Text string `json:"text" validate:"required,min=2,max=500"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required,min=2,max=500"`
}
