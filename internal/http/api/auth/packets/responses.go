package packets

type SessionResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
