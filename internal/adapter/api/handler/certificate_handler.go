package handler

import (
	"github.com/labstack/echo/v4"

	"fad/internal/usecase"
	"fad/pkg/response"
)

type CertificateHandler struct {
	certificationUseCase *usecase.CertificationUseCase
}

func NewCertificateHandler(certificationUseCase *usecase.CertificationUseCase) *CertificateHandler {
	return &CertificateHandler{
		certificationUseCase: certificationUseCase,
	}
}

func (h *CertificateHandler) ListCertificates(c echo.Context) error {
	rows, err := h.certificationUseCase.ListCertificates(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return respondList(c, rows)
}

func (h *CertificateHandler) GetCertificate(c echo.Context) error {
	cert, err := h.certificationUseCase.GetCertification(c.Request().Context(), c.Param("vendorId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cert)
}

func (h *CertificateHandler) Renew(c echo.Context) error {
	cert, err := h.certificationUseCase.Renew(c.Request().Context(), sessionFrom(c), c.Param("vendorId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cert)
}

func (h *CertificateHandler) Revoke(c echo.Context) error {
	cert, err := h.certificationUseCase.Revoke(c.Request().Context(), sessionFrom(c), c.Param("vendorId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cert)
}
