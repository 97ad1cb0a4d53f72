package metrics

// Prometheus metric labels.
const (
	// 02-client labels

	LabelClientType = "client_type"
	LabelClientID   = "client_id"
	LabelUpdateType = "update_type"
	LabelMsgType    = "msg_type"

	// 03-connection labels

	LabelConnectionID = "connection_id"

	// 04-channel labels

	LabelPortID         = "port_id"
	LabelChannelID      = "channel_id"
	LabelConnectionHops = "connection_hops"
)
