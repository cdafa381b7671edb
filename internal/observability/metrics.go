package observability

const (
	MUsecaseRequests  MetricKey = "usecase_requests_total"
	MUsecaseDuration  MetricKey = "usecase_duration_seconds"
	MCheckoutTotal    MetricKey = "checkout_total_amount"
	MEventsPublished  MetricKey = "events_published_total"
	MEventPublishFail MetricKey = "event_publish_failed_total"
)
