// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by the hiscores scraper. The hiscores pages are slow
// under load, hence the generous timeout.
var HTTPClient = &http.Client{
	Timeout: 60 * time.Second,
}
