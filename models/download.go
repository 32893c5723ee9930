package models

// DownloadStatus reports what EnsurePresent did.
type DownloadStatus string

const (
	DownloadAlreadyPresent DownloadStatus = "already_present"
	DownloadDownloaded     DownloadStatus = "downloaded"
	DownloadFailed         DownloadStatus = "failed"
)

func (s DownloadStatus) String() string {
	return string(s)
}

// DownloadResult is the outcome of a single EnsurePresent call.
type DownloadResult struct {
	Status     DownloadStatus `json:"status" yaml:"status"`
	StatusCode int            `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Path       string         `json:"path" yaml:"path"`
	SourceURL  string         `json:"source_url" yaml:"source_url"`
	Bytes      int64          `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	SHA256     string         `json:"sha256,omitempty" yaml:"sha256,omitempty"`
}
