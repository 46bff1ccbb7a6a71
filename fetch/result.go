package fetch

// Fixed messages reported for the per-url failure categories.
const (
	MsgBadScheme = "URL must use HTTP or HTTPS protocol"
	MsgNotImage  = "URL does not point to an image file"
	MsgDuplicate = "Image already exists in collection"
)

// Result records the outcome of fetching one url. It is immutable after
// creation.
type Result struct {
	URL     string // The url as supplied by the caller.
	OK      bool   // True if the image was saved.
	Message string // Human-readable outcome description.
}

func success(u string, filename string) Result {
	return Result{
		URL:     u,
		OK:      true,
		Message: "Successfully fetched: " + filename,
	}
}

func failure(u string, msg string) Result {
	return Result{
		URL:     u,
		Message: msg,
	}
}
