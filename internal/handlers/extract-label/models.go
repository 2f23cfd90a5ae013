// internal/handlers/extract-label/models.go
package extractlabel

// Wine is the structured record the vision model extracts from the two label
// photos. Nullable fields stay null when the label is illegible.
type Wine struct {
	Nome   string  `json:"nome"`
	Pais   *string `json:"pais"`
	Regiao *string `json:"regiao"`
	Uvas   *string `json:"uvas"`
	ABV    *string `json:"abv"`
	Safra  *string `json:"safra"`
	Forca  int     `json:"forca"`
	Poesia string  `json:"poesia"`
}

// WineWithImages is the wire shape inside the response envelope. The image
// references are always null here; the catalog client assigns real paths
// after it stores the photos.
type WineWithImages struct {
	Wine
	ImgFrente *string `json:"imgFrente"`
	ImgVerso  *string `json:"imgVerso"`
}

type Output struct {
	Wine WineWithImages `json:"wine"`
}
