package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/app/repository"
	"github.com/DavidKiarie/CircleFund/internal/pkg/database"
	"github.com/DavidKiarie/CircleFund/internal/pkg/dedup"
	"github.com/DavidKiarie/CircleFund/internal/pkg/mail"
	"github.com/DavidKiarie/CircleFund/internal/pkg/usercontext"
)

type createSubmissionRequest struct {
	VideoURL    string `json:"video_url"`
	Title       string `json:"title"`
	EconomyID   uint   `json:"economy_id"` // admins only; bce users submit for their own economy
	MerchantIDs []uint `json:"merchant_ids"`
}

type reviewSubmissionRequest struct {
	Action   string `json:"action"` // approve, reject, flag
	Comments string `json:"comments"`
}

// HandleCreateSubmission runs the duplicate filter and creates a pending
// submission with its merchant links. The at-most-once rule is global: a
// video already submitted by any economy is rejected.
func HandleCreateSubmission(c *fiber.Ctx) error {
	var req createSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if req.VideoURL == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "video_url is required")
	}

	userCtx := usercontext.GetUserContext(c)
	economyID := userCtx.EconomyID
	if usercontext.IsAdmin(c) && req.EconomyID != 0 {
		economyID = req.EconomyID
	}
	if economyID == 0 {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "account is not bound to an economy")
	}

	repos := repository.GetGlobalFactory()

	check, err := dedup.NewFilter(repos.GetSubmissionRepository()).CheckDuplicate(req.VideoURL, economyID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	if check.IsDuplicate {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":    "duplicate",
			"message":  check.Message,
			"original": check.Original,
		})
	}

	submission := models.NewVideoSubmission(economyID, req.VideoURL, check.Hash, time.Now().UTC().Format("2006-01"))
	submission.Title = req.Title
	if err := submission.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	merchantRepo := repos.GetMerchantRepository()
	merchants := make([]*models.Merchant, 0, len(req.MerchantIDs))
	for _, id := range req.MerchantIDs {
		m, err := merchantRepo.GetByID(id)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", fmt.Sprintf("merchant %d does not exist", id))
		}
		if m.EconomyID != economyID {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", fmt.Sprintf("merchant %d belongs to another economy", id))
		}
		merchants = append(merchants, m)
	}
	submission.MerchantCount = len(merchants)

	if err := repos.GetSubmissionRepository().Create(submission); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to create submission")
	}

	// IsNewMerchant is fixed now, at link time: true iff the merchant has
	// never appeared in any submission before this one.
	for _, m := range merchants {
		prior, err := merchantRepo.HasPriorAppearance(m.ID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to link merchant")
		}
		link := &models.VideoMerchant{
			VideoSubmissionID: submission.ID,
			MerchantID:        m.ID,
			IsNewMerchant:     !prior,
		}
		if err := merchantRepo.LinkToSubmission(link); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to link merchant")
		}
	}

	if err := repos.GetEconomyRepository().IncrementSubmittedCount(economyID); err != nil {
		log.Errorf("submitted counter not incremented for economy %d: %v", economyID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(submission)
}

// HandleListSubmissions lists submissions. Admins see every economy and may
// filter by status; bce users see only their own economy's rows.
func HandleListSubmissions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	repo := repository.GetGlobalFactory().GetSubmissionRepository()

	var (
		rows []models.VideoSubmission
		err  error
	)
	if usercontext.IsAdmin(c) {
		status := c.Query("status", models.SubmissionStatusPending)
		rows, err = repo.ListByStatus(status, offset, limit)
	} else {
		economyID := usercontext.GetEconomyID(c)
		if economyID == 0 {
			return jsonError(c, fiber.StatusForbidden, "forbidden", "account is not bound to an economy")
		}
		rows, err = repo.ListByEconomy(economyID, offset, limit)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load submissions")
	}

	return c.JSON(fiber.Map{
		"submissions": rows,
		"limit":       limit,
		"offset":      offset,
	})
}

// HandleReviewSubmission performs the one-shot status transition. A reviewed
// submission can not be reviewed again. Approval updates the merchant
// appearance bookkeeping and the economy's approved counter.
func HandleReviewSubmission(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "uuid missing")
	}

	var req reviewSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	var newStatus string
	switch req.Action {
	case "approve":
		newStatus = models.SubmissionStatusApproved
	case "reject":
		newStatus = models.SubmissionStatusRejected
	case "flag":
		newStatus = models.SubmissionStatusFlagged
	default:
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "action must be approve, reject or flag")
	}

	repos := repository.GetGlobalFactory()
	submission, err := repos.GetSubmissionRepository().GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "submission not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load submission")
	}
	if submission.IsReviewed() {
		return jsonError(c, fiber.StatusConflict, "conflict", "submission was already reviewed")
	}

	reviewerID := usercontext.GetUserID(c)
	now := time.Now()
	submission.Status = newStatus
	submission.ReviewedBy = &reviewerID
	submission.ReviewedAt = &now
	submission.AdminComments = req.Comments

	if err := repos.GetSubmissionRepository().Update(submission); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to update submission")
	}

	if newStatus == models.SubmissionStatusApproved {
		if err := repos.GetEconomyRepository().IncrementApprovedCount(submission.EconomyID); err != nil {
			log.Errorf("approved counter not incremented for economy %d: %v", submission.EconomyID, err)
		}

		links, err := repos.GetMerchantRepository().GetLinksForSubmission(submission.ID)
		if err != nil {
			log.Errorf("merchant links not loaded for submission %s: %v", submission.UUID, err)
		}
		for _, link := range links {
			merchant, err := repos.GetMerchantRepository().GetByID(link.MerchantID)
			if err != nil {
				log.Errorf("merchant %d not loaded for appearance update: %v", link.MerchantID, err)
				continue
			}
			merchant.RecordAppearance(now)
			if err := repos.GetMerchantRepository().Update(merchant); err != nil {
				log.Errorf("appearance not recorded for merchant %d: %v", merchant.ID, err)
			}
		}
	}

	notifyReviewOutcome(submission, newStatus, req.Comments)

	return c.JSON(fiber.Map{
		"uuid":        submission.UUID,
		"status":      submission.Status,
		"reviewed_by": submission.ReviewedBy,
		"reviewed_at": formatTimePtr(submission.ReviewedAt),
		"comments":    submission.AdminComments,
	})
}

// notifyReviewOutcome mails the economy's members about the review result.
// Mail failures are logged and never fail the review.
func notifyReviewOutcome(submission *models.VideoSubmission, status, comments string) {
	var users []models.User
	if err := database.GetDB().Where("economy_id = ? AND status = ?", submission.EconomyID, models.STATUS_ACTIVE).Find(&users).Error; err != nil {
		log.Errorf("review notification recipients not loaded for economy %d: %v", submission.EconomyID, err)
		return
	}

	subject := fmt.Sprintf("Your video submission was %s", status)
	body := fmt.Sprintf("Submission %s (%s) was %s.", submission.UUID, submission.VideoURL, status)
	if comments != "" {
		body += "\n\nReviewer comments: " + comments
	}

	for _, u := range users {
		if err := mail.SendMail(u.Email, subject, body); err != nil {
			log.Errorf("review notification not sent to %s: %v", u.Email, err)
		}
	}
}
