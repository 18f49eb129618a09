package config

type WorkerKeyStruct struct {
	RedemptionEventsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	RedemptionEventsQueue: "redemption_events_queue",
}
