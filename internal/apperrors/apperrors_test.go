package apperrors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFoundf("group %s does not exist", "g1"), http.StatusNotFound},
		{NotAllowedf("user %s is not a member of group %s", "u1", "g1"), http.StatusForbidden},
		{Unauthenticatedf("must be logged in"), http.StatusUnauthorized},
		{Invalidf("invalid date %q", "nope"), http.StatusBadRequest},
		{Conflictf("username %q is already taken", "alice"), http.StatusConflict},
		{Externalf(errors.New("timeout"), "translation service unavailable"), http.StatusBadGateway},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := errors.WithMessage(NotFoundf("post %s does not exist", "p1"), "update post")
	if KindOf(err) != KindNotFound {
		t.Fatalf("wrapped kind = %v, want not_found", KindOf(err))
	}
}
