package usersapimodels

import (
	"net/mail"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"
	dbmodels "ptw-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type User struct {
	Email        string          `json:"email"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	PhoneNumber  string          `json:"phone_number"`
	Password     string          `json:"password,omitempty"`
	Role         models.UserRole `json:"role"`
	DepartmentID string          `json:"department_id"`
	IsActive     bool            `json:"is_active"`
}

func (u User) Validate() error {
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.New("invalid email format")
	}
	if u.FirstName == "" {
		return errors.New("first name is required")
	}
	if !u.Role.IsValid() {
		return errors.Errorf("unknown role %q", u.Role)
	}
	if u.DepartmentID == "" {
		return errors.New("department is required")
	}
	if len(u.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type UserView struct {
	User
	ID             string     `json:"id"`
	RoleName       string     `json:"role_name"`
	DepartmentName string     `json:"department_name"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

func UserConvert(rec dbmodels.User) UserView {
	result := UserView{
		User: User{
			Email:        rec.Email,
			FirstName:    rec.FirstName,
			LastName:     rec.LastName,
			PhoneNumber:  rec.PhoneNumber,
			Role:         rec.RoleID,
			DepartmentID: rec.DepartmentID,
			IsActive:     rec.IsActive,
		},
		ID:        rec.ID,
		RoleName:  rec.RoleID.ToHuman(),
		LastLogin: rec.LastLogin,
	}
	if rec.Department != nil {
		result.DepartmentName = rec.Department.Name
	}
	return result
}

type UserUpdate struct {
	Email        *string          `json:"email"`
	FirstName    *string          `json:"first_name"`
	LastName     *string          `json:"last_name"`
	PhoneNumber  *string          `json:"phone_number"`
	Password     *string          `json:"password"`
	Role         *models.UserRole `json:"role"`
	DepartmentID *string          `json:"department_id"`
	IsActive     *bool            `json:"is_active"`
}

func (u UserUpdate) Validate() error {
	if u.Email != nil {
		if _, err := mail.ParseAddress(*u.Email); err != nil {
			return errors.New("invalid email format")
		}
	}
	if u.Role != nil && !u.Role.IsValid() {
		return errors.Errorf("unknown role %q", *u.Role)
	}
	if u.Password != nil && len(*u.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type UserFilter struct {
	Search       string          `json:"search"`
	Role         models.UserRole `json:"role"`
	DepartmentID string          `json:"department_id"`
}

type UserListRequest struct {
	UserFilter
	apimodels.Pagination
}
