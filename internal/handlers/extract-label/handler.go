// internal/handlers/extract-label/handler.go
package extractlabel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xeipuuv/gojsonschema"

	commonerrors "adega-proxy/internal/common/errors"
	"adega-proxy/internal/common/logger"
	"adega-proxy/internal/providers/gemini"
)

const Route = "/extract-label"

const invalidUploadMessage = "Send multipart/form-data with 'front' and 'back' files."

// extractionPrompt is the fixed instruction sent with both label photos. The
// catalog is Portuguese-language, so the prompt is too.
const extractionPrompt = "Você é um extrator de dados de rótulos de vinho. " +
	"Use a foto da frente e do verso. " +
	"Extraia somente o que estiver legível; se não encontrar, use null. " +
	"Para safra, use 'NV' se estiver indicado como sem safra."

// VisionClient is the structured-extraction capability the handler depends on.
type VisionClient interface {
	GenerateJSON(ctx context.Context, prompt string, images []gemini.InlineImage, schema map[string]interface{}) ([]byte, error)
}

type Handler struct {
	config *Config
	vision VisionClient
	logger logger.Logger
}

func NewHandler(config *Config, vision VisionClient, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		vision: vision,
		logger: log.With(map[string]interface{}{"route": Route}),
	}
}

// Handle runs the extraction operation: validate the multipart input, make
// one vision call, validate and shape the result. Any upstream error fails
// the whole request; nothing is retried.
func (h *Handler) Handle(r *http.Request) (interface{}, error) {
	start := time.Now()

	if err := r.ParseMultipartForm(h.config.MaxUploadBytes); err != nil {
		return nil, commonerrors.NewValidationError(invalidUploadMessage)
	}

	front, err := readFilePart(r, "front")
	if err != nil {
		return nil, commonerrors.NewValidationError(invalidUploadMessage)
	}
	back, err := readFilePart(r, "back")
	if err != nil {
		return nil, commonerrors.NewValidationError(invalidUploadMessage)
	}

	h.logger.Info("extract.start", map[string]interface{}{
		"frontBytes": len(front.Data),
		"backBytes":  len(back.Data),
	})

	raw, err := h.vision.GenerateJSON(r.Context(), extractionPrompt, []gemini.InlineImage{front, back}, ExtractionSchema())
	if err != nil {
		return nil, upstreamError(commonerrors.ErrCodeUpstreamFailed, err)
	}

	wine, err := decodeWine(raw)
	if err != nil {
		h.logger.Error("extract.malformed_output", map[string]interface{}{
			"error": err.Error(),
			"bytes": len(raw),
		})
		return nil, upstreamError(commonerrors.ErrCodeUpstreamMalformed, err)
	}

	h.logger.Info("extract.ok", map[string]interface{}{
		"nome":      wine.Nome,
		"forca":     wine.Forca,
		"elapsedMs": time.Since(start).Milliseconds(),
	})

	return &Output{
		Wine: WineWithImages{
			Wine:      *wine,
			ImgFrente: nil,
			ImgVerso:  nil,
		},
	}, nil
}

func readFilePart(r *http.Request, field string) (gemini.InlineImage, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return gemini.InlineImage{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return gemini.InlineImage{}, err
	}

	return gemini.InlineImage{
		MIMEType: header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// decodeWine validates the model's JSON against the extraction schema and
// decodes it. Validation is lenient about extra keys; the image-reference
// fields are forced to null by the caller either way.
func decodeWine(raw []byte) (*Wine, error) {
	schemaLoader := gojsonschema.NewGoLoader(LocalValidationSchema())
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in model output: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("model output failed schema validation: %v", errs)
	}

	var wine Wine
	if err := json.Unmarshal(raw, &wine); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	return &wine, nil
}

// upstreamError keeps already-standardized errors intact and wraps the rest.
func upstreamError(code commonerrors.ErrorCode, err error) error {
	var stdErr *commonerrors.StandardError
	if errors.As(err, &stdErr) {
		return err
	}
	return commonerrors.NewUpstreamError(code, "gemini", err)
}
