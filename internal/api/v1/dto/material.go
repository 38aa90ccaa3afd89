package dto

// MaterialDownloadResponseDTO carries a short-lived signed download URL.
type MaterialDownloadResponseDTO struct {
	MaterialID  string `json:"material_id"`
	DownloadURL string `json:"download_url"`
}
