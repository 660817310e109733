package github

// CodeResult is one hit from the code search API.
type CodeResult struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Repository string `json:"repository"` // "owner/repo"
	HTMLURL    string `json:"html_url"`
	ContentURL string `json:"content_url"` // contents API URL, pinned to the indexed commit
}

type searchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Name       string `json:"name"`
		Path       string `json:"path"`
		URL        string `json:"url"`
		HTMLURL    string `json:"html_url"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
	} `json:"items"`
}

// apiContentResponse is the internal GitHub API response for file content.
type apiContentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
