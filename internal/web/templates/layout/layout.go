// Package layout holds the page shell shared by every web page
package layout

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData is common data for all pages
type PageData struct {
	Title string
	Flash *FlashMessage
}
