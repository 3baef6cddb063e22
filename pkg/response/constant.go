package response

const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	ValidationErrorCode     = 400
	ValidationErrorMsg      = "Validation error"
	InternalServerErrorCode = 500

	stackTraceDepth      = 32
	discordMaxMessageLen = 4000
	reportTitle          = "================ SOS SERVICE ERROR ================="
	reportRule           = "----------------------------------------------------"
)
