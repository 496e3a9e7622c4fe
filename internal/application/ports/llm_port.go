package ports

import (
	"context"

	"github.com/obrasoft/obra-api/internal/application/dto"
)

// ReceiptExtractor define el puerto de salida para la extracción IA de recibos.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
// Siguiendo el principio de inversión de dependencias (DIP), la aplicación
// solo conoce este contrato, no la implementación concreta.
type ReceiptExtractor interface {
	// ExtractReceipt analiza la imagen de un recibo y devuelve proveedor,
	// fecha, total y partidas con un score de confianza.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	ExtractReceipt(ctx context.Context, image []byte, mediaType string) (*dto.ReceiptExtractionDTO, error)
}
