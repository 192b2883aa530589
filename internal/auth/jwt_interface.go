package auth

// JWTGenerator issues tokens; the login handler only needs this half
type JWTGenerator interface {
	Generate(username string) (string, error)
}

// JWT is what the middleware and router need, so it can be mocked in tests
type JWT interface {
	JWTGenerator
	Verify(token string) (*Claims, error)
}
