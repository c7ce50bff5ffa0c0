package metrics

import "time"

type RedisOperation string

const (
	RedisOpGet RedisOperation = "get"
	RedisOpSet RedisOperation = "set"
	RedisOpDel RedisOperation = "del"
)

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

func RecordRateUpdate(service, source string) {
	ExchangeRateUpdatesTotal.WithLabelValues(service, source).Inc()
}

func RecordProviderFailure(service string) {
	ExchangeRateProviderFailures.WithLabelValues(service).Inc()
}

func RecordConversion(service, currency string) {
	CurrencyConversionsTotal.WithLabelValues(service, currency).Inc()
}

func RecordProductCreated(service, source string) {
	ProductsCreatedTotal.WithLabelValues(service, source).Inc()
}

func RecordQuoteCreated(service string) {
	QuotesCreatedTotal.WithLabelValues(service).Inc()
}

// KafkaProduceTimer measures one produce call and records its outcome.
type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}
