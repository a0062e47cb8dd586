package txprogress

import (
	"context"
	"net/http"

	"github.com/gabapcia/txprogress/internal/chainerr"
	"github.com/gabapcia/txprogress/internal/pkg/logger"
)

// errorMessage is the text shown for a standalone error. A server error from
// a backing service is shown verbatim, everything else goes through the
// chain error parser.
func errorMessage(err error) string {
	parsed := chainerr.Parse(err)
	if parsed.Kind == chainerr.KindHTTP && parsed.StatusCode == http.StatusInternalServerError {
		return parsed.Body
	}

	return parsed.Message()
}

func (s *service) ShowError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger.Error(ctx, "transaction error", "error", err)

	content := Content{Text: errorMessage(err)}
	opts := Options{
		Type:         TypeError,
		AutoClose:    defaultAutoClose,
		CloseOnClick: true,
	}

	ctx, cancel := detachedContext(ctx)
	defer cancel()

	if _, showErr := s.display.Show(ctx, content, opts); showErr != nil {
		logger.Warn(ctx, "failed to show error notification",
			"notification.text", content.Text,
			"error", showErr,
		)
	}
}
