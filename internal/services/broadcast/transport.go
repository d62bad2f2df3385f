//go:generate go run go.uber.org/mock/mockgen -source=transport.go -destination=../../mocks/mock_transport.go -package=mocks
package broadcast

import (
	"context"

	"github.com/mcoot/scrumpoker/internal/model"
)

// Transport delivers a payload to one live channel
type Transport interface {
	Send(ctx context.Context, channelID model.ChannelID, payload []byte) error
}
