package http

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/ledger"
	"github.com/rs/zerolog"
)

var errInvalidBody = errors.New("cuerpo inválido")

var validate = newValidator()

// newValidator valida con los nombres JSON de los campos en los mensajes.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON parsea el cuerpo y valida los tags `validate` del DTO.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidBody
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// "CreateBillRequest.items[0].quantity" -> "items[0].quantity"
		_, field, ok := strings.Cut(fe.Namespace(), ".")
		if !ok {
			field = fe.Field()
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// withLogger deja el logger en el contexto de la petición para respondError.
func withLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(log.WithContext(c.UserContext()))
		return c.Next()
	}
}

// respondError traduce errores de dominio a códigos HTTP. Los errores no
// controlados se registran con el logger de la petición (ver withLogger).
func respondError(c *fiber.Ctx, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	switch {
	case errors.Is(err, errInvalidBody):
		status, code, msg = fiber.StatusBadRequest, "INVALID_BODY", err.Error()
	case errors.Is(err, domain.ErrEmptyDraft):
		status, code, msg = fiber.StatusBadRequest, "EMPTY_DRAFT", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		status, code, msg = fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrConflict):
		status, code, msg = fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", err.Error()
	default:
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// sendFile responde con un documento exportado. El HTML de impresión se
// entrega inline para que el navegador lo abra; el resto como descarga.
func sendFile(c *fiber.Ctx, f *dto.ExportFile) error {
	disposition := "attachment"
	if strings.HasPrefix(f.ContentType, fiber.MIMETextHTML) {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, f.FileName))
	return c.Send(f.Content)
}

// reportCriteria filtros del panel desde la query: from, to, description, category, gsm.
func reportCriteria(c *fiber.Ctx) (ledger.Criteria, error) {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return ledger.Criteria{}, fmt.Errorf("%w: query inválida", domain.ErrInvalidInput)
	}
	return ledger.Criteria{
		FromDate:    q.From,
		ToDate:      q.To,
		Description: q.Description,
		Category:    q.Category,
		GSM:         q.GSM,
	}, nil
}

func expenseCriteria(c *fiber.Ctx) (ledger.ExpenseCriteria, error) {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return ledger.ExpenseCriteria{}, fmt.Errorf("%w: query inválida", domain.ErrInvalidInput)
	}
	return ledger.ExpenseCriteria{FromDate: q.From, ToDate: q.To, Item: q.Item}, nil
}

// paramInt64 lee un id numérico de la ruta.
func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s inválido", domain.ErrInvalidInput, name)
	}
	return id, nil
}
