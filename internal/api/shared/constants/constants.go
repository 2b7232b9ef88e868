package constants

const (
	SERVICE_NAME         = "ff-marketplace-api"
	MAX_VIEWER_ID_LEN    = 128
	VIEWER_KEY_SEPARATOR = "/"
)
