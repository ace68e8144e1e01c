package domain

// EnforceRequest asks whether an access tier may perform action on resource.
type EnforceRequest struct {
	Tier     string `json:"tier"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Tier    string `json:"tier"`
	Allowed bool   `json:"allowed"`
}

type PolicyResponse struct {
	Tier     string `json:"tier"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
