// Package student contains the HTTP handlers for the student pages.
//
// Every handler is built by a factory that receives its dependencies and
// returns the http.HandlerFunc the router needs:
//
//	router.HandleFunc("GET /{$}", student.List(deps))
//
// List(deps) runs once at startup; the returned closure runs on every
// request. Nothing is read from package-level state.
//
// Mutating routes answer with 303 See Other to "/" (post/redirect/get),
// so refreshing the list never resubmits a form.
package student

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-web/internal/http/render"
	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/types"
	"github.com/aanand-mishra/students-web/internal/utils/response"
)

// HomeGreeting is the fixed body of GET /home.
const HomeGreeting = "Welcome to Home Page!"

// View renders pages. *render.Renderer satisfies it.
type View interface {
	HTML(w http.ResponseWriter, status int, page string, data any) error
	Error(w http.ResponseWriter, status int, message string)
}

// Deps is everything the student handlers need.
type Deps struct {
	Storage storage.Storage
	View    View
	Log     *slog.Logger
}

var validate = newValidator()

// newValidator reports field errors under their form input names
// ("firstname"), which is what users see on the page.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// List handles GET /
// Renders every student plus an empty create form.
func List(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Log.Info("listing students")

		students, err := d.Storage.GetStudents(r.Context())
		if err != nil {
			d.storageError(w, "listing students", err)
			return
		}

		d.page(w, http.StatusOK, render.PageIndex, render.IndexPage{Students: students})
	}
}

// Create handles POST /
//
// Form fields: firstname, lastname, email, phone — all required.
//
//	303 See Other → /   created
//	400 Bad Request     unparsable body, or the list page re-rendered
//	                    with the submitted values and messages
//	500 Internal        database error
func Create(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Log.Info("creating a student")

		form, err := parseForm(r)
		if err != nil {
			d.View.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		if messages := check(form); messages != nil {
			students, err := d.Storage.GetStudents(r.Context())
			if err != nil {
				d.storageError(w, "listing students", err)
				return
			}
			d.page(w, http.StatusBadRequest, render.PageIndex, render.IndexPage{
				Students: students,
				Form:     form,
				Errors:   messages,
			})
			return
		}

		student, err := d.Storage.CreateStudent(r.Context(), form.FirstName, form.LastName, form.Email, form.Phone)
		if err != nil {
			d.storageError(w, "creating student", err)
			return
		}

		d.Log.Info("student created", slog.Int64("id", student.ID))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Home handles GET /home with a fixed greeting; no data access.
func Home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, HomeGreeting)
	}
}

// EditForm handles GET /update/{id}
// Renders the update form prefilled with the stored values.
//
//	400 Bad Request  id is not an integer
//	404 Not Found    no such student
func EditForm(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := d.pathID(w, r)
		if !ok {
			return
		}
		d.Log.Info("showing update form", slog.Int64("id", id))

		student, err := d.Storage.GetStudentByID(r.Context(), id)
		if err != nil {
			d.storageError(w, "getting student", err)
			return
		}

		d.page(w, http.StatusOK, render.PageUpdate, render.UpdatePage{
			ID:   student.ID,
			Form: types.FormFromStudent(student),
		})
	}
}

// Update handles POST /update/{id}
// Overwrites all four fields, then redirects to the list.
//
//	400 Bad Request  bad id, unparsable body, or failed validation
//	                 (form re-rendered, nothing written)
//	404 Not Found    no such student
//	500 Internal     database error
func Update(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := d.pathID(w, r)
		if !ok {
			return
		}
		d.Log.Info("updating a student", slog.Int64("id", id))

		form, err := parseForm(r)
		if err != nil {
			d.View.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		if messages := check(form); messages != nil {
			d.page(w, http.StatusBadRequest, render.PageUpdate, render.UpdatePage{
				ID:     id,
				Form:   form,
				Errors: messages,
			})
			return
		}

		if _, err := d.Storage.UpdateStudentByID(r.Context(), id, form.Student(id)); err != nil {
			d.storageError(w, "updating student", err)
			return
		}

		d.Log.Info("student updated", slog.Int64("id", id))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Delete handles POST /delete/{id}
// Removes the student permanently, then redirects to the list.
//
//	400 Bad Request  id is not an integer
//	404 Not Found    no such student (also on a repeated delete)
//	500 Internal     database error
func Delete(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := d.pathID(w, r)
		if !ok {
			return
		}
		d.Log.Info("deleting a student", slog.Int64("id", id))

		if err := d.Storage.DeleteStudentByID(r.Context(), id); err != nil {
			d.storageError(w, "deleting student", err)
			return
		}

		d.Log.Info("student deleted", slog.Int64("id", id))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// parseForm reads the urlencoded (or multipart) body into a trimmed form.
func parseForm(r *http.Request) (types.StudentForm, error) {
	if err := r.ParseForm(); err != nil {
		return types.StudentForm{}, fmt.Errorf("malformed form: %w", err)
	}

	form := types.StudentForm{
		FirstName: r.PostForm.Get("firstname"),
		LastName:  r.PostForm.Get("lastname"),
		Email:     r.PostForm.Get("email"),
		Phone:     r.PostForm.Get("phone"),
	}
	form.Normalize()
	return form, nil
}

// check returns nil when form is valid, else one message per bad field.
func check(form types.StudentForm) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return response.ValidationMessages(verrs)
	}
	return []string{err.Error()}
}

func (d Deps) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		d.View.Error(w, http.StatusBadRequest, "invalid id: must be an integer")
		return 0, false
	}
	return id, true
}

// storageError maps ErrNotFound to 404 and anything else to 500.
// Internal error text is logged, never shown.
func (d Deps) storageError(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		d.Log.Info(action+": not found", slog.String("error", err.Error()))
		d.View.Error(w, http.StatusNotFound, "No such student.")
		return
	}

	d.Log.Error(action+" failed", slog.String("error", err.Error()))
	d.View.Error(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

func (d Deps) page(w http.ResponseWriter, status int, page string, data any) {
	if err := d.View.HTML(w, status, page, data); err != nil {
		d.Log.Error("rendering page failed", slog.String("page", page), slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
