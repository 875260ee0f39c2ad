package updater

import (
	"strconv"
)

// Kind identifies a stage of an update check.
type Kind int

const (
	Checking Kind = iota
	Available
	NotAvailable
	DownloadProgress
	Downloaded
	Error
)

func (k Kind) String() string {
	switch k {
	case Checking:
		return "checking-for-update"
	case Available:
		return "update-available"
	case NotAvailable:
		return "update-not-available"
	case DownloadProgress:
		return "download-progress"
	case Downloaded:
		return "update-downloaded"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// ReleaseInfo describes the release advertised by the feed.
type ReleaseInfo struct {
	Version     string
	ReleaseDate string
	// File is the local path of the downloaded package, set on Downloaded.
	File string
}

// Progress reports transfer state while downloading.
type Progress struct {
	BytesPerSecond int64
	Percent        float64
	Transferred    int64
	Total          int64
}

type Event struct {
	Kind     Kind
	Release  *ReleaseInfo
	Progress Progress
	Err      error
}

// Message renders the status text shown to the user.
func (e Event) Message() string {
	switch e.Kind {
	case Checking:
		return "Checking for update..."
	case Available:
		return "Update available."
	case NotAvailable:
		return "Update not available."
	case DownloadProgress:
		p := e.Progress
		return "Download speed: " + strconv.FormatInt(p.BytesPerSecond, 10) +
			" - Downloaded " + strconv.FormatFloat(p.Percent, 'f', -1, 64) + "%" +
			" (" + strconv.FormatInt(p.Transferred, 10) + "/" + strconv.FormatInt(p.Total, 10) + ")"
	case Downloaded:
		return "Update downloaded"
	case Error:
		if e.Err == nil {
			return "Error in auto-updater. unknown error"
		}
		return "Error in auto-updater. " + e.Err.Error()
	default:
		return ""
	}
}
