package config

type (
	DriverConfig struct {
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
	}

	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Enabled  bool
		Host     string
		Port     string
		Username string
		Password string
	}
)

type (
	InternalConfig struct {
		App     App
		FHIR    FHIR
		Report  Report
		Breaker Breaker
	}

	App struct {
		Env                           string
		Port                          string
		Version                       string
		EndpointPrefix                string
		MaxRequests                   int
		ShutdownTimeout               int
		ChartQueryTimeoutInSeconds    int
		ChartRenderWaitInMilliseconds int
		ViewIdleTTLInMinutes          int
		ViewSessionTTLInHours         int
		MaxPatientViews               int
		MaxPatientViewsPerSession     int
		RabbitMQReportEventsQueue     string
	}

	FHIR struct {
		BaseUrl              string
		AccessToken          string
		HTTPTimeoutInSeconds int
	}

	// Report holds the classification stamped on reports created from the chart page.
	Report struct {
		CodeSystem  string
		Code        string
		CodeDisplay string
	}

	Breaker struct {
		MaxRequests      int
		IntervalSeconds  int
		TimeoutSeconds   int
		FailureThreshold int
		FailureRatio     float64
		MinRequests      int
	}
)
