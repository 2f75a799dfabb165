package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/util"
)

type AdminHandler struct {
	admins *service.AdminService
}

func RegisterAdmin(e *echo.Echo, sessions *service.SessionService, admins *service.AdminService) {
	handler := &AdminHandler{admins: admins}

	public := e.Group(BasePath)
	public.POST("/register-admin", handler.register)
	public.POST("/login", handler.login)

	protected := e.Group(BasePath, RequireAuth(sessions))
	protected.PUT("/update-profile/:id", handler.updateProfile)
	protected.DELETE("/delete-admin", handler.deleteAdmin)
	protected.GET("/get-all-users", handler.listStaff)
}

func (h *AdminHandler) register(c echo.Context) error {
	var req RegisterAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, err := h.admins.Register(c.Request().Context(), service.RegisterAdminInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Number:          req.Number,
		Address:         req.Address,
		DOB:             req.DOB,
		Gender:          req.Gender,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AdminType:       req.AdminType,
		Department:      req.Department,
	})
	if err != nil {
		return writeError(c, "register admin", err)
	}

	return c.JSON(http.StatusCreated, RegisterAdminResponse{
		Message: "Admin added successfully!",
		User:    *user,
	})
}

func (h *AdminHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Error("email and password are required"))
	}

	result, err := h.admins.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, "login", err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:           result.Session.Token,
		User:            *result.User,
		TokenExpiration: result.Session.ExpirationMillis(),
		Message:         "Login successfully!",
	})
}

// updateProfile edits the staff member named by :id, not only the caller.
func (h *AdminHandler) updateProfile(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.admins.UpdateProfile(c.Request().Context(), id, service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Number:    req.Number,
		Address:   req.Address,
		DOB:       req.DOB,
	})
	if err != nil {
		return writeError(c, "update profile", err)
	}

	return c.JSON(http.StatusOK, ProfileResponse{
		Token:   result.Session.Token,
		User:    *result.User,
		Message: "Profile updated successfully!",
	})
}

func (h *AdminHandler) deleteAdmin(c echo.Context) error {
	id, err := parseID(c.QueryParam("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
	}
	if err := h.admins.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, "delete admin", err)
	}
	return c.JSON(http.StatusOK, util.Message("Admin deleted successfully"))
}

func (h *AdminHandler) listStaff(c echo.Context) error {
	grouped, err := h.admins.ListByAdminType(c.Request().Context())
	if err != nil {
		return writeError(c, "list staff", err)
	}
	return c.JSON(http.StatusOK, StaffDirectoryResponse{
		Receptionist: nonNil(grouped[domain.AdminTypeReceptionist]),
		Doctor:       nonNil(grouped[domain.AdminTypeDoctor]),
		Pharmacist:   nonNil(grouped[domain.AdminTypePharmacist]),
		Nurse:        nonNil(grouped[domain.AdminTypeNurse]),
		Accountant:   nonNil(grouped[domain.AdminTypeAccountant]),
		SuperAdmin:   nonNil(grouped[domain.AdminTypeSuperAdmin]),
	})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
