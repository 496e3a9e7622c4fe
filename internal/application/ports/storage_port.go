package ports

import (
	"context"
	"io"
	"time"
)

// FileStorage define el puerto de almacenamiento de imágenes de recibos.
// El acceso de lectura es siempre vía URL firmada de corta duración; nunca se
// exponen URLs públicas permanentes para subidas nuevas.
type FileStorage interface {
	Upload(ctx context.Context, key string, content io.Reader, contentType string) error
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
