package tracker

import (
	"strings"

	"github.com/heartmarshall/studylog-backend/internal/domain"
)

const maxNameLen = 100

// AddCourseInput holds the parameters for adding a course.
type AddCourseInput struct {
	Name      string
	Provider  string
	Topic     string
	Completed bool
}

// Validate checks all fields and collects all errors.
func (i AddCourseInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName("name", i.Name)...)

	if len(strings.TrimSpace(i.Provider)) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "provider", Message: "max 100 characters"})
	}
	if len(strings.TrimSpace(i.Topic)) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateCourseInput holds the parameters for updating a course matched by
// name. Nil fields are left unchanged; NewName renames the course.
type UpdateCourseInput struct {
	Name      string
	NewName   *string
	Provider  *string
	Topic     *string
	Completed *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateCourseInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName("name", i.Name)...)

	if i.NewName == nil && i.Provider == nil && i.Topic == nil && i.Completed == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.NewName != nil {
		errs = append(errs, validateName("new_name", *i.NewName)...)
	}
	if i.Provider != nil && len(strings.TrimSpace(*i.Provider)) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "provider", Message: "max 100 characters"})
	}
	if i.Topic != nil && len(strings.TrimSpace(*i.Topic)) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListCoursesInput holds the list options: a sort field or the completed
// filter, never both in the same request.
type ListCoursesInput struct {
	SortBy        domain.CourseSortField
	CompletedOnly bool
}

// Validate checks all fields and collects all errors.
func (i ListCoursesInput) Validate() error {
	var errs []domain.FieldError

	if i.SortBy != "" && !i.SortBy.Valid() {
		errs = append(errs, domain.FieldError{Field: "sort_by", Message: "must be name or provider"})
	}
	if i.SortBy != "" && i.CompletedOnly {
		errs = append(errs, domain.FieldError{Field: "input", Message: "sort and filter are mutually exclusive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddModuleInput holds the parameters for adding a module.
type AddModuleInput struct {
	Name      string
	Year      domain.ModuleYear
	Completed bool
}

// Validate checks all fields and collects all errors.
func (i AddModuleInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName("name", i.Name)...)

	if !i.Year.Valid() {
		errs = append(errs, domain.FieldError{Field: "year", Message: "must be First, Second, Third, Placement or Final"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateModuleInput holds the parameters for updating a module matched by
// name. Nil fields are left unchanged; NewName renames the module.
type UpdateModuleInput struct {
	Name      string
	NewName   *string
	Year      *domain.ModuleYear
	Completed *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateModuleInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName("name", i.Name)...)

	if i.NewName == nil && i.Year == nil && i.Completed == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.NewName != nil {
		errs = append(errs, validateName("new_name", *i.NewName)...)
	}
	if i.Year != nil && !i.Year.Valid() {
		errs = append(errs, domain.FieldError{Field: "year", Message: "must be First, Second, Third, Placement or Final"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListModulesInput holds the list options: the year filter or the completed
// filter, never both in the same request.
type ListModulesInput struct {
	Year          *domain.ModuleYear
	CompletedOnly bool
}

// Validate checks all fields and collects all errors.
func (i ListModulesInput) Validate() error {
	var errs []domain.FieldError

	if i.Year != nil && !i.Year.Valid() {
		errs = append(errs, domain.FieldError{Field: "year", Message: "must be First, Second, Third, Placement or Final"})
	}
	if i.Year != nil && i.CompletedOnly {
		errs = append(errs, domain.FieldError{Field: "input", Message: "filters are mutually exclusive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteInput holds the match key for delete operations.
type DeleteInput struct {
	Name string
}

// Validate checks all fields and collects all errors.
func (i DeleteInput) Validate() error {
	if errs := validateName("name", i.Name); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateName checks a record name used as a match key.
func validateName(field, name string) []domain.FieldError {
	var errs []domain.FieldError

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		errs = append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if len(trimmed) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: field, Message: "max 100 characters"})
	}

	return errs
}
