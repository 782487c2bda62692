package communication

import "errors"

var ErrConnectingBroker = errors.New("error connecting to RabbitMQ")
