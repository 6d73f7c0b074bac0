package domain

// EnforceRequest adalah permintaan otorisasi yang dicek terhadap policy RBAC.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}
