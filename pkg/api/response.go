package api

// Response is the envelope returned by every endpoint.
// Data and the paging fields are omitted when they do not apply.
type Response struct {
	Data     any    `json:"data,omitempty"`
	Message  string `json:"message"`
	Length   int    `json:"length,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"pageSize,omitempty"`
	Total    int    `json:"total,omitempty"`
}

// Common response messages.
const (
	MessageSuccess        = "Success!"
	MessageCreated        = "Created successfully!"
	MessageUpdated        = "Updated successfully!"
	MessageDeleted        = "Deleted successfully!"
	MessageCreationFailed = "Creation failed!"
	MessageUpdateFailed   = "Update failed!"
	MessageDeleteFailed   = "Delete failed!"
	MessageNotFound       = "Not found!"
)
