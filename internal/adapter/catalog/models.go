package catalog

// MediaRecord - одна запись из data/videos.json или data/photos.json
type MediaRecord struct {
	Filename  string `json:"filename"`
	Timestamp string `json:"timestamp"`
	Likes     int    `json:"likes"`
}
