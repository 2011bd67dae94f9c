package server

import (
	"net/http"

	"github.com/jonathan/career-compass/internal/dashboard"
	"github.com/jonathan/career-compass/internal/recommend"
	"github.com/jonathan/career-compass/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}

// errorBody is the JSON body of every failed request.
type errorBody struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if _, ok := err.(*ErrValidation); ok {
		return http.StatusBadRequest
	}
	switch recommend.KindOf(err) {
	case recommend.KindInvalidProfile:
		return http.StatusBadRequest
	case recommend.KindService, recommend.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// bodyFor builds the response body for err. Recommendation failures only ever
// expose the generic message; client mistakes get their detail back.
func bodyFor(err error) errorBody {
	status := HTTPStatus(err)
	if status == http.StatusBadRequest {
		kind := string(recommend.KindOf(err))
		if _, ok := err.(*ErrValidation); ok {
			kind = "validation"
		}
		return errorBody{Error: "invalid request", Kind: kind, Details: err.Error()}
	}
	return errorBody{Error: recommend.UserMessage, Kind: string(recommend.KindOf(err))}
}

// recommendationFailure is the body of a failed recommendation. It carries an
// empty batch and its dashboard so clients render the same empty state.
type recommendationFailure struct {
	errorBody
	Paths     []types.CareerPath  `json:"paths"`
	Dashboard dashboard.Dashboard `json:"dashboard"`
}

func failureFor(err error) recommendationFailure {
	empty := []types.CareerPath{}
	view, _ := dashboard.Build(empty, "")
	return recommendationFailure{errorBody: bodyFor(err), Paths: empty, Dashboard: view}
}
