package utils

import (
	"patient-chart-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

func GenerateViewSessionID() string {
	return uuid.New().String()
}
