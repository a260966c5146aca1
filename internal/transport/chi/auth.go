package chi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// Probes stay reachable without a token.
var publicPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

var (
	errMissingToken = errors.New("missing app token")
	errNotBearer    = errors.New("authorization header must use the Bearer scheme")
	errBadToken     = errors.New("invalid app token")
)

// AppTokenMiddleware admits requests carrying one of tokens in X-App-Token or
// as a Bearer credential. No tokens means the API is open.
func AppTokenMiddleware(tokens []string) func(http.Handler) http.Handler {
	var valid [][]byte
	for _, t := range tokens {
		if t != "" {
			valid = append(valid, []byte(t))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(valid) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if err := checkToken(r, valid); err != nil {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkToken(r *http.Request, valid [][]byte) error {
	token, err := requestToken(r)
	if err != nil {
		return err
	}
	for _, v := range valid {
		if subtle.ConstantTimeCompare([]byte(token), v) == 1 {
			return nil
		}
	}
	return errBadToken
}

func requestToken(r *http.Request) (string, error) {
	if t := r.Header.Get("X-App-Token"); t != "" {
		return t, nil
	}
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", errMissingToken
	}
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errNotBearer
	}
	return token, nil
}
