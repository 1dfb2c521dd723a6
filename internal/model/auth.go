package model

// AuthResponse is returned to a client after a successful verification or
// login. The plaintext OTP never appears here; it only travels over the
// mail channel.
type AuthResponse struct {
	AccessToken  string
	RefreshToken string
	Username     string
	Email        string
}
