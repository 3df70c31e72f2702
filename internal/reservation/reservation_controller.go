package reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/acebook/backend/internal/court"
	"github.com/acebook/backend/internal/user"
	"github.com/acebook/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationController handles booking HTTP requests. All admission
// decisions go through the engine inside the repository transaction.
type ReservationController struct {
	repo   ReservationRepository
	courts court.CourtRepository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewReservationController wires the booking endpoints. A nil clock falls
// back to time.Now; tests inject a fixed one.
func NewReservationController(repo ReservationRepository, courts court.CourtRepository, loc *time.Location, now func() time.Time, logger *zap.Logger) *ReservationController {
	if now == nil {
		now = time.Now
	}
	return &ReservationController{repo: repo, courts: courts, loc: loc, now: now, logger: logger}
}

// ListReservations godoc
// @Summary      List reservations
// @Description  Admins see every reservation in their club; players see their own.
// @Tags         Reservations
// @Produce      json
// @Success      200  {array}  ReservationResponse
// @Failure      401  {object} utils.ErrorResponse "Unauthorized"
// @Router       /reservations [get]
// @Security     Bearer
func (rc *ReservationController) ListReservations(c *gin.Context) {
	currentUser, err := user.CurrentUser(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	reservations, err := rc.repo.ListForUser(currentUser)
	if err != nil {
		rc.logger.Warn("list reservations", zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}

	out := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, newReservationResponse(&reservations[i], rc.loc))
	}
	c.JSON(http.StatusOK, out)
}

// CreateReservation godoc
// @Summary      Book a court
// @Description  Validates the request against the club's booking rules and
// @Description  commits atomically. Players book for themselves, today only;
// @Description  admins can book for any club member on any future date.
// @Tags         Reservations
// @Accept       json
// @Produce      json
// @Param        reservation  body  ReservationInput  true  "Reservation request"
// @Success      201  {object} ReservationResponse
// @Failure      400  {object} utils.ErrorResponse "Rejected by booking rules"
// @Failure      401  {object} utils.ErrorResponse "Unauthorized"
// @Router       /reservations [post]
// @Security     Bearer
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	currentUser, err := user.CurrentUser(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	var input ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestJSON(c, "Invalid input: "+err.Error())
		return
	}

	req, err := rc.bookingRequest(input, currentUser)
	if err != nil {
		utils.BadRequestJSON(c, err.Error())
		return
	}

	res, err := rc.repo.Book(func(store ConflictStore) (*Reservation, error) {
		return NewEngine(store, rc.loc, rc.now).Admit(req, currentUser, nil)
	})
	if err != nil {
		rc.rejectOrFail(c, err, "create reservation")
		return
	}

	c.JSON(http.StatusCreated, newReservationResponse(res, rc.loc))
}

// UpdateReservation godoc
// @Summary      Change a reservation
// @Description  Omitted fields keep their current value. The changed booking
// @Description  passes the same admission rules as a new one, excluding the
// @Description  reservation's own slot from conflict checks.
// @Tags         Reservations
// @Accept       json
// @Produce      json
// @Param        reservation_id  path  int                     true  "Reservation ID"
// @Param        reservation     body  ReservationUpdateInput  true  "Fields to change"
// @Success      200  {object} ReservationResponse
// @Failure      400  {object} utils.ErrorResponse "Rejected by booking rules"
// @Failure      404  {object} utils.ErrorResponse "Reservation not found"
// @Router       /reservations/{reservation_id} [patch]
// @Security     Bearer
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	currentUser, err := user.CurrentUser(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	reservationID, err := strconv.ParseUint(c.Param("reservation_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(c, "invalid reservation ID")
		return
	}

	existing, err := rc.repo.ByIDForUser(uint(reservationID), currentUser)
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			utils.NotFoundJSON(c, "Reservation")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	var input ReservationUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestJSON(c, "Invalid input: "+err.Error())
		return
	}

	req, err := rc.mergedRequest(input, existing)
	if err != nil {
		utils.BadRequestJSON(c, err.Error())
		return
	}

	res, err := rc.repo.Reschedule(existing, func(store ConflictStore) (*Reservation, error) {
		return NewEngine(store, rc.loc, rc.now).Admit(req, currentUser, existing)
	})
	if err != nil {
		rc.rejectOrFail(c, err, "update reservation")
		return
	}

	c.JSON(http.StatusOK, newReservationResponse(res, rc.loc))
}

// Availability godoc
// @Summary      Occupied start times for a court on a date
// @Description  Returns the local start times of existing reservations on the
// @Description  court for the given day, in HH:MM format.
// @Tags         Reservations
// @Produce      json
// @Param        court  query  int     true  "Court ID"
// @Param        date   query  string  true  "Date (YYYY-MM-DD)"
// @Success      200  {object} AvailabilityResponse
// @Failure      400  {object} utils.ErrorResponse "Missing or invalid parameters"
// @Failure      404  {object} utils.ErrorResponse "Court not found"
// @Router       /reservations/availability [get]
// @Security     Bearer
func (rc *ReservationController) Availability(c *gin.Context) {
	currentUser, err := user.CurrentUser(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}
	if currentUser.ClubID == nil {
		utils.ForbiddenJSON(c)
		return
	}

	courtID, err := strconv.ParseUint(c.Query("court"), 10, 32)
	if err != nil || courtID == 0 {
		utils.BadRequestJSON(c, "court query parameter is required")
		return
	}
	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), rc.loc)
	if err != nil {
		utils.BadRequestJSON(c, "date query parameter must be YYYY-MM-DD")
		return
	}

	if _, err := rc.courts.ByIDInClub(uint(courtID), *currentUser.ClubID); err != nil {
		if errors.Is(err, court.ErrCourtNotFound) {
			utils.NotFoundJSON(c, "Court")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	dayStart, dayEnd := localDayRange(day, rc.loc)
	starts, err := rc.repo.OccupiedSlots(uint(courtID), dayStart, dayEnd)
	if err != nil {
		rc.logger.Warn("availability query", zap.Uint64("court_id", courtID), zap.Error(err))
		utils.InternalErrorJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Occupied: occupiedTimes(starts, rc.loc)})
}

func (rc *ReservationController) bookingRequest(input ReservationInput, actor *user.ClubUser) (BookingRequest, error) {
	start, err := ParseLocalTime(input.StartTime, rc.loc)
	if err != nil {
		return BookingRequest{}, err
	}
	end, err := ParseLocalTime(input.EndTime, rc.loc)
	if err != nil {
		return BookingRequest{}, err
	}

	req := BookingRequest{
		CourtID:   input.Court,
		PlayerID:  actor.ID,
		StartTime: start,
		EndTime:   end,
		Type:      input.Type,
	}
	if input.Player != nil {
		req.PlayerID = *input.Player
	}
	return req, nil
}

// mergedRequest builds the admission input for an edit, taking omitted fields
// from the stored reservation. Resubmitting a reservation unchanged therefore
// re-admits cleanly.
func (rc *ReservationController) mergedRequest(input ReservationUpdateInput, existing *Reservation) (BookingRequest, error) {
	req := BookingRequest{
		CourtID:   existing.CourtID,
		PlayerID:  existing.PlayerID,
		StartTime: existing.StartTime,
		EndTime:   existing.EndTime,
		Type:      existing.Type,
	}
	if input.Court != nil {
		req.CourtID = *input.Court
	}
	if input.Player != nil {
		req.PlayerID = *input.Player
	}
	if input.StartTime != nil {
		start, err := ParseLocalTime(*input.StartTime, rc.loc)
		if err != nil {
			return BookingRequest{}, err
		}
		req.StartTime = start
	}
	if input.EndTime != nil {
		end, err := ParseLocalTime(*input.EndTime, rc.loc)
		if err != nil {
			return BookingRequest{}, err
		}
		req.EndTime = end
	}
	if input.Type != nil {
		req.Type = *input.Type
	}
	return req, nil
}

func (rc *ReservationController) rejectOrFail(c *gin.Context, err error, op string) {
	var admissionErr *AdmissionError
	if errors.As(err, &admissionErr) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: admissionErr.Message, Code: admissionErr.Code})
		return
	}
	rc.logger.Warn(op, zap.Error(err))
	utils.InternalErrorJSON(c, err)
}
