package client

import (
	"fmt"
	"net/http"

	apperrors "rumahstay/pkg/errors"
	"rumahstay/pkg/model"
)

// PropertyClient talks to the properties service.
type PropertyClient struct {
	http *HttpClient
}

func NewPropertyClient(http *HttpClient) *PropertyClient {
	return &PropertyClient{http: http}
}

type propertyEnvelope struct {
	Data model.Property `json:"data"`
}

func (c *PropertyClient) GetByID(id string) (*model.Property, error) {
	resp, err := c.http.GET("/api/v1/properties/id/" + id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "properties service unreachable", http.StatusServiceUnavailable)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apperrors.NotFoundWithID("Property", id)
	default:
		return nil, apperrors.Internal(
			fmt.Sprintf("properties service returned status %d", resp.StatusCode), nil)
	}

	var envelope propertyEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, apperrors.Internal("failed to decode property response", err)
	}

	return &envelope.Data, nil
}
