package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"reflect"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/vidtube/backend/internal/domain"
)

// maxJSONBody caps JSON and form request bodies at 16KB. File uploads go
// through multipart parsing and are not subject to this limit.
const maxJSONBody = 16 << 10

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data,omitempty"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors,omitempty"`
	Stack      string   `json:"stack,omitempty"`
}

var devMode bool

// SetDevMode controls whether error envelopes carry a stack trace. Enabled
// only outside production.
func SetDevMode(enabled bool) { devMode = enabled }

func respond(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

var kindStatus = map[domain.ErrorKind]int{
	domain.KindBadRequest:   http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
	domain.KindUpstream:     http.StatusBadGateway,
	domain.KindInternal:     http.StatusInternalServerError,
}

// respondError is the single place failures become wire errors. Anything
// without a taxonomy kind is normalized to a 500 and its text is withheld.
func respondError(w http.ResponseWriter, component string, err error) {
	kind := domain.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		log.Printf("ERROR [%s] %v", component, err)
	}

	env := Envelope{
		StatusCode: status,
		Message:    domain.MessageOf(err),
		Errors:     []string{},
		Success:    false,
	}
	if devMode {
		env.Stack = string(debug.Stack())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

var errMalformedBody = domain.E(domain.KindBadRequest, "Invalid request body")

// decodeBody reads the request body into dst, accepting JSON or an
// urlencoded form. Form fields are matched to the struct's json tags; only
// flat structs of strings and numbers are supported, which covers every
// non-multipart request this API takes.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return errMalformedBody
		}
		return formInto(r, dst)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errMalformedBody
	}
	return nil
}

func formInto(r *http.Request, dst any) error {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		raw := r.PostFormValue(name)
		if raw == "" {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Float64:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				field.SetFloat(f)
			}
		case reflect.Int:
			if n, err := strconv.Atoi(raw); err == nil {
				field.SetInt(int64(n))
			}
		case reflect.Bool:
			if b, err := strconv.ParseBool(raw); err == nil {
				field.SetBool(b)
			}
		}
	}
	return nil
}

var errInvalidID = domain.E(domain.KindBadRequest, "Invalid id")

func badRequest(message string) error {
	return domain.E(domain.KindBadRequest, message)
}

// queryInt reads an integer query parameter, falling back when absent or
// malformed.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

var errUnauthorized = domain.E(domain.KindUnauthorized, "Unauthorized request")
