package client

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/kambaz/internal/client/models"
	"github.com/dmitrijs2005/kambaz/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const sessionCookie = "connect.sid"

// fakeKambaz is an in-memory Kambaz server used by the transport tests.
type fakeKambaz struct {
	mu          sync.Mutex
	users       map[string]models.User
	courses     map[string]models.Course
	modules     map[string]models.Module
	assignments map[string]models.Assignment
	enrollments map[string]map[string]bool // user -> course set
	sessions    map[string]string          // cookie value -> user id
	todos       []models.Todo
	labAssign   models.LabAssignment
	nextTodo    int64

	lastQuery      string
	lastRequestID  string
	lastLabCookies int
}

func newFakeKambaz() *fakeKambaz {
	return &fakeKambaz{
		users: map[string]models.User{
			"1": {ID: "1", Username: "iron_man", Password: "stark123", FirstName: "Tony", LastName: "Stark", Role: models.RoleFaculty},
			"2": {ID: "2", Username: "dark_knight", Password: "wayne123", FirstName: "Bruce", LastName: "Wayne", Role: models.RoleStudent},
			"3": {ID: "3", Username: "admin", Password: "admin", FirstName: "Ada", LastName: "Min", Role: models.RoleAdmin},
		},
		courses: map[string]models.Course{
			"RS101": {ID: "RS101", Name: "Rocket Propulsion", Number: "RS4550"},
			"RS102": {ID: "RS102", Name: "Aerodynamics", Number: "RS4560"},
		},
		modules: map[string]models.Module{
			"M101": {ID: "M101", Name: "Intro", Course: "RS101"},
		},
		assignments: map[string]models.Assignment{
			"A101": {ID: "A101", Title: "Propulsion Assignment", Course: "RS101", DueDate: "2026-05-13T23:59:00Z"},
		},
		enrollments: map[string]map[string]bool{"2": {"RS101": true}},
		sessions:    map[string]string{},
		todos:       []models.Todo{{ID: 1, Title: "Task 1"}, {ID: 2, Title: "Task 2", Completed: true}},
		labAssign:   models.LabAssignment{ID: 1, Title: "NodeJS Assignment", Score: 0},
		nextTodo:    3,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func public(u models.User) models.User {
	u.Password = ""
	return u
}

func (f *fakeKambaz) currentUser(r *http.Request) (models.User, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return models.User{}, false
	}
	id, ok := f.sessions[c.Value]
	if !ok {
		return models.User{}, false
	}
	u, ok := f.users[id]
	return u, ok
}

func (f *fakeKambaz) startSession(w http.ResponseWriter, u models.User) {
	token := uuid.NewString()
	f.sessions[token] = u.ID
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/", HttpOnly: true})
}

func (f *fakeKambaz) router() http.Handler {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.lastRequestID = req.Header.Get(common.RequestIDHeaderName)
			f.lastQuery = req.URL.RawQuery
			next.ServeHTTP(w, req)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/signin", func(w http.ResponseWriter, req *http.Request) {
			var creds models.Credentials
			_ = json.NewDecoder(req.Body).Decode(&creds)
			for _, u := range f.users {
				if u.Username == creds.Username && u.Password == creds.Password {
					f.startSession(w, u)
					writeJSON(w, http.StatusOK, public(u))
					return
				}
			}
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		})
		r.Post("/signup", func(w http.ResponseWriter, req *http.Request) {
			var u models.User
			_ = json.NewDecoder(req.Body).Decode(&u)
			for _, existing := range f.users {
				if existing.Username == u.Username {
					writeMessage(w, http.StatusBadRequest, "Username already taken")
					return
				}
			}
			u.ID = uuid.NewString()
			f.users[u.ID] = u
			f.startSession(w, u)
			writeJSON(w, http.StatusOK, public(u))
		})
		r.Post("/profile", func(w http.ResponseWriter, req *http.Request) {
			u, ok := f.currentUser(req)
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(w, http.StatusOK, public(u))
		})
		r.Post("/signout", func(w http.ResponseWriter, req *http.Request) {
			if c, err := req.Cookie(sessionCookie); err == nil {
				delete(f.sessions, c.Value)
			}
			http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
			w.WriteHeader(http.StatusOK)
		})

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			role := req.URL.Query().Get("role")
			name := strings.ToLower(req.URL.Query().Get("name"))
			out := []models.User{}
			for _, id := range []string{"1", "2", "3"} {
				u, ok := f.users[id]
				if !ok {
					continue
				}
				if role != "" && string(u.Role) != role {
					continue
				}
				if name != "" && !strings.Contains(strings.ToLower(u.FullName()), name) {
					continue
				}
				out = append(out, public(u))
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var u models.User
			_ = json.NewDecoder(req.Body).Decode(&u)
			u.ID = "9"
			f.users[u.ID] = u
			writeJSON(w, http.StatusOK, public(u))
		})
		r.Get("/{uid}", func(w http.ResponseWriter, req *http.Request) {
			u, ok := f.users[chi.URLParam(req, "uid")]
			if !ok {
				writeMessage(w, http.StatusNotFound, "User not found")
				return
			}
			writeJSON(w, http.StatusOK, public(u))
		})
		r.Put("/{uid}", func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "uid")
			if _, ok := f.users[id]; !ok {
				writeMessage(w, http.StatusNotFound, "User not found")
				return
			}
			var u models.User
			_ = json.NewDecoder(req.Body).Decode(&u)
			u.ID = id
			f.users[id] = u
			w.WriteHeader(http.StatusNoContent)
		})
		r.Delete("/{uid}", func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "uid")
			if _, ok := f.users[id]; !ok {
				writeMessage(w, http.StatusNotFound, "User not found")
				return
			}
			delete(f.users, id)
			w.WriteHeader(http.StatusOK)
		})

		r.Get("/{uid}/courses", func(w http.ResponseWriter, req *http.Request) {
			uid := chi.URLParam(req, "uid")
			if uid == "current" {
				u, ok := f.currentUser(req)
				if !ok {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				uid = u.ID
			}
			out := []models.Course{}
			for cid := range f.enrollments[uid] {
				out = append(out, f.courses[cid])
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Post("/current/courses", func(w http.ResponseWriter, req *http.Request) {
			u, ok := f.currentUser(req)
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			var c models.Course
			_ = json.NewDecoder(req.Body).Decode(&c)
			c.ID = "RS" + strconv.Itoa(100+len(f.courses)+1)
			f.courses[c.ID] = c
			f.enroll(u.ID, c.ID)
			writeJSON(w, http.StatusOK, c)
		})
		r.Post("/{uid}/courses/{cid}", func(w http.ResponseWriter, req *http.Request) {
			uid := chi.URLParam(req, "uid")
			if uid == "current" {
				u, ok := f.currentUser(req)
				if !ok {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				uid = u.ID
			}
			f.enroll(uid, chi.URLParam(req, "cid"))
			w.WriteHeader(http.StatusOK)
		})
		r.Delete("/{uid}/courses/{cid}", func(w http.ResponseWriter, req *http.Request) {
			uid := chi.URLParam(req, "uid")
			if uid == "current" {
				u, ok := f.currentUser(req)
				if !ok {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				uid = u.ID
			}
			delete(f.enrollments[uid], chi.URLParam(req, "cid"))
			w.WriteHeader(http.StatusOK)
		})
	})

	r.Route("/api/courses", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			out := []models.Course{}
			for _, id := range []string{"RS101", "RS102", "RS103"} {
				if c, ok := f.courses[id]; ok {
					out = append(out, c)
				}
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Get("/{cid}", func(w http.ResponseWriter, req *http.Request) {
			c, ok := f.courses[chi.URLParam(req, "cid")]
			if !ok {
				writeMessage(w, http.StatusNotFound, "Course not found")
				return
			}
			writeJSON(w, http.StatusOK, c)
		})
		r.Put("/{cid}", func(w http.ResponseWriter, req *http.Request) {
			var c models.Course
			_ = json.NewDecoder(req.Body).Decode(&c)
			c.ID = chi.URLParam(req, "cid")
			f.courses[c.ID] = c
			writeJSON(w, http.StatusOK, c)
		})
		r.Delete("/{cid}", func(w http.ResponseWriter, req *http.Request) {
			delete(f.courses, chi.URLParam(req, "cid"))
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/{cid}/users", func(w http.ResponseWriter, req *http.Request) {
			cid := chi.URLParam(req, "cid")
			out := []models.User{}
			for _, id := range []string{"1", "2", "3"} {
				if f.enrollments[id][cid] {
					out = append(out, public(f.users[id]))
				}
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Get("/{cid}/modules", func(w http.ResponseWriter, req *http.Request) {
			cid := chi.URLParam(req, "cid")
			out := []models.Module{}
			for _, m := range f.modules {
				if m.Course == cid {
					out = append(out, m)
				}
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Post("/{cid}/modules", func(w http.ResponseWriter, req *http.Request) {
			var m models.Module
			_ = json.NewDecoder(req.Body).Decode(&m)
			m.ID = "M" + strconv.Itoa(100+len(f.modules)+1)
			m.Course = chi.URLParam(req, "cid")
			f.modules[m.ID] = m
			writeJSON(w, http.StatusOK, m)
		})
		r.Get("/{cid}/assignments", func(w http.ResponseWriter, req *http.Request) {
			cid := chi.URLParam(req, "cid")
			if cid == "broken" {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("<html>not json</html>"))
				return
			}
			out := []models.Assignment{}
			for _, a := range f.assignments {
				if a.Course == cid {
					out = append(out, a)
				}
			}
			writeJSON(w, http.StatusOK, out)
		})
		r.Post("/{cid}/assignments", func(w http.ResponseWriter, req *http.Request) {
			var a models.Assignment
			_ = json.NewDecoder(req.Body).Decode(&a)
			a.ID = "A" + strconv.Itoa(100+len(f.assignments)+1)
			a.Course = chi.URLParam(req, "cid")
			f.assignments[a.ID] = a
			writeJSON(w, http.StatusOK, a)
		})
	})

	r.Put("/api/modules/{mid}", func(w http.ResponseWriter, req *http.Request) {
		var m models.Module
		_ = json.NewDecoder(req.Body).Decode(&m)
		m.ID = chi.URLParam(req, "mid")
		f.modules[m.ID] = m
		writeJSON(w, http.StatusOK, m)
	})
	r.Delete("/api/modules/{mid}", func(w http.ResponseWriter, req *http.Request) {
		delete(f.modules, chi.URLParam(req, "mid"))
		w.WriteHeader(http.StatusOK)
	})
	r.Put("/api/assignments/{aid}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Delete("/api/assignments/{aid}", func(w http.ResponseWriter, req *http.Request) {
		aid := chi.URLParam(req, "aid")
		if _, ok := f.assignments[aid]; !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		delete(f.assignments, aid)
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/lab5", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				f.lastLabCookies = len(req.Cookies())
				next.ServeHTTP(w, req)
			})
		})
		r.Get("/welcome", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte("Welcome to Lab 5"))
		})
		r.Get("/assignment", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, f.labAssign)
		})
		r.Get("/assignment/title/{title}", func(w http.ResponseWriter, req *http.Request) {
			f.labAssign.Title = chi.URLParam(req, "title")
			writeJSON(w, http.StatusOK, f.labAssign)
		})
		r.Get("/todos", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, f.todos)
		})
		r.Post("/todos", func(w http.ResponseWriter, req *http.Request) {
			var t models.Todo
			_ = json.NewDecoder(req.Body).Decode(&t)
			t.ID = f.nextTodo
			f.nextTodo++
			f.todos = append(f.todos, t)
			writeJSON(w, http.StatusOK, t)
		})
		r.Get("/todos/create", func(w http.ResponseWriter, req *http.Request) {
			f.todos = append(f.todos, models.Todo{ID: f.nextTodo, Title: "New Task"})
			f.nextTodo++
			writeJSON(w, http.StatusOK, f.todos)
		})
		r.Get("/todos/{id}/delete", func(w http.ResponseWriter, req *http.Request) {
			id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
			f.removeTodo(id)
			writeJSON(w, http.StatusOK, f.todos)
		})
		r.Delete("/todos/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
			if !f.removeTodo(id) {
				writeMessage(w, http.StatusNotFound, "Unable to delete Todo with ID "+chi.URLParam(req, "id"))
				return
			}
			w.WriteHeader(http.StatusOK)
		})
		r.Put("/todos/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
			var t models.Todo
			_ = json.NewDecoder(req.Body).Decode(&t)
			for i := range f.todos {
				if f.todos[i].ID == id {
					t.ID = id
					f.todos[i] = t
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			writeMessage(w, http.StatusNotFound, "Unable to update Todo with ID "+chi.URLParam(req, "id"))
		})
	})

	return r
}

func (f *fakeKambaz) enroll(uid, cid string) {
	if f.enrollments[uid] == nil {
		f.enrollments[uid] = map[string]bool{}
	}
	f.enrollments[uid][cid] = true
}

func (f *fakeKambaz) removeTodo(id int64) bool {
	for i, t := range f.todos {
		if t.ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeKambaz) query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func (f *fakeKambaz) requestID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastRequestID
}

func (f *fakeKambaz) labCookies() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastLabCookies
}

func (f *fakeKambaz) todo(i int) models.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.todos[i]
}
