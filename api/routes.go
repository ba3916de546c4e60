package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// ProvidersEndpoint manages the provider allow-list (owner only)
	ProvidersEndpoint = "/admin/providers"
	// OwnershipEndpoint transfers the owner role (owner only)
	OwnershipEndpoint = "/admin/ownership"
	// PauseEndpoint and UnpauseEndpoint toggle the pause flag (owner only)
	PauseEndpoint   = "/admin/pause"
	UnpauseEndpoint = "/admin/unpause"
	// CooldownEndpoint sets the cooldown durations (owner only)
	CooldownEndpoint = "/admin/cooldown"
	// BatchOpenEndpoint and BatchCloseEndpoint drive the batch lifecycle
	BatchOpenEndpoint  = "/batches/open"
	BatchCloseEndpoint = "/batches/close"
	// BatchCurrentEndpoint returns the current batch state
	BatchCurrentEndpoint = "/batches/current"
	// ProposalsEndpoint submits an encrypted proposal
	ProposalsEndpoint = "/proposals"
	// ProposalEndpoint reads a proposal back
	BatchURLParam    = "batchId"
	ProviderURLParam = "provider"
	VoterURLParam    = "voter"
	ProposalEndpoint = "/proposals/{" + BatchURLParam + "}/{" + ProviderURLParam + "}"
	// VotesEndpoint submits an encrypted vote
	VotesEndpoint = "/votes"
	// VoteEndpoint reads a vote back
	VoteEndpoint = "/votes/{" + BatchURLParam + "}/{" + ProviderURLParam + "}/{" + VoterURLParam + "}"
	// DecryptionRequestsEndpoint requests decryption of a closed batch
	DecryptionRequestsEndpoint = "/decryption/requests"
	// DecryptionCallbackEndpoint receives the engine's result callback
	DecryptionCallbackEndpoint = "/decryption/callback"
	// DecryptionRequestEndpoint reads a decryption context back
	RequestURLParam           = "requestId"
	DecryptionRequestEndpoint = "/decryption/requests/{" + RequestURLParam + "}"
	// AuditEndpoint pages through the audit log
	AuditEndpoint = "/audit"
)
