// Package notify implementa el receptor de notificaciones del catálogo.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jhoicas/inventario-catalog/internal/application/catalog"
	"github.com/jhoicas/inventario-catalog/pkg/logger"
)

var (
	_ catalog.Notifier = (*LogNotifier)(nil)
	_ catalog.Notifier = (*WriterNotifier)(nil)
)

// LogNotifier envía las notificaciones al log estructurado (servidor HTTP).
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador sobre el logger de la app.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(_ context.Context, msg string) {
	n.log.Info().Str("notification", "success").Msg(msg)
}

func (n *LogNotifier) Warning(_ context.Context, msg string) {
	n.log.Warn().Str("notification", "warning").Msg(msg)
}

func (n *LogNotifier) Error(_ context.Context, msg string) {
	n.log.Error().Str("notification", "error").Msg(msg)
}

// WriterNotifier escribe una línea por notificación (CLI).
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier construye el notificador sobre w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) write(prefix, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", prefix, msg)
}

func (n *WriterNotifier) Success(_ context.Context, msg string) { n.write("✔", msg) }
func (n *WriterNotifier) Warning(_ context.Context, msg string) { n.write("!", msg) }
func (n *WriterNotifier) Error(_ context.Context, msg string)   { n.write("✖", msg) }
