package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/app/repository"
	"github.com/DavidKiarie/CircleFund/internal/pkg/funding"
	"github.com/DavidKiarie/CircleFund/internal/pkg/usercontext"
)

type calculateRankingsRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type calculateFundingRequest struct {
	Period    string `json:"period"` // "YYYY-MM"
	TotalPool int64  `json:"total_pool,omitempty"`
}

type saveFundingRequest struct {
	Period      string               `json:"period"`
	FundingData []funding.Allocation `json:"funding_data"`
}

type merchantFundingRequest struct {
	Period string `json:"period"`
}

// resolvePeriodQuery accepts both query forms: ?period=YYYY-MM or
// ?year=&month=.
func resolvePeriodQuery(raw string, year, month int) (funding.Period, error) {
	if raw != "" {
		return funding.ParsePeriod(raw)
	}
	return funding.NewPeriod(year, month)
}

// HandleCalculateRankings computes and persists the monthly ranking.
func HandleCalculateRankings(c *fiber.Ctx) error {
	var req calculateRankingsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	period, err := funding.NewPeriod(req.Year, req.Month)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	repos := repository.GetGlobalFactory()
	svc := funding.NewRankingService(repos.GetSubmissionRepository(), repos.GetRankingRepository())

	ranked, err := svc.CalculateRankings(period)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	if err := svc.SaveRankings(period, ranked); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	log.Infof("rankings calculated for %s: %d economies", period.Key(), len(ranked))

	return c.JSON(fiber.Map{
		"period":   period.Key(),
		"rankings": ranked,
	})
}

// HandleGetRankings returns the saved ranking for a period; an empty list if
// none was computed yet. The period comes as either ?period=YYYY-MM or
// ?year=&month=.
func HandleGetRankings(c *fiber.Ctx) error {
	period, err := resolvePeriodQuery(c.Query("period"), c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	repos := repository.GetGlobalFactory()
	svc := funding.NewRankingService(repos.GetSubmissionRepository(), repos.GetRankingRepository())

	rows, err := svc.GetSavedRankings(period)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load rankings")
	}
	if rows == nil {
		rows = []models.MonthlyRanking{}
	}

	return c.JSON(fiber.Map{
		"period":   period.Key(),
		"rankings": rows,
	})
}

// HandleCalculateFunding turns the saved ranking into per-economy amounts.
// Pure calculation: nothing is persisted until /funding/save.
func HandleCalculateFunding(c *fiber.Ctx) error {
	var req calculateFundingRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	period, err := funding.ParsePeriod(req.Period)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	repos := repository.GetGlobalFactory()

	cfg, err := funding.LoadConfig(repos.GetSettingRepository())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
	if req.TotalPool > 0 {
		cfg.TotalPool = req.TotalPool
	}

	ranked, err := loadRankedEconomies(period)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load rankings")
	}
	if len(ranked) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "no saved rankings for "+period.Key()+"; calculate rankings first")
	}

	result := funding.CalculateAllocation(ranked, cfg)

	return c.JSON(fiber.Map{
		"period": period.Key(),
		"result": result,
	})
}

// HandleSaveFunding persists calculated allocations as pending disbursement
// rows addressed to each economy's payout address.
func HandleSaveFunding(c *fiber.Ctx) error {
	var req saveFundingRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	period, err := funding.ParsePeriod(req.Period)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	if len(req.FundingData) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "funding_data is empty")
	}

	repos := repository.GetGlobalFactory()
	initiatedBy := usercontext.GetUserID(c)

	saved := 0
	skipped := 0
	for _, alloc := range req.FundingData {
		if alloc.TotalFunding <= 0 {
			skipped++
			continue
		}
		economy, err := repos.GetEconomyRepository().GetByID(alloc.EconomyID)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown economy in funding_data")
		}

		row := &models.FundingDisbursement{
			EconomyID:        economy.ID,
			AmountSats:       alloc.TotalFunding,
			FundingMonth:     period.Month,
			FundingYear:      period.Year,
			Status:           models.DisbursementStatusPending,
			PaymentMethod:    models.PaymentMethodLightning,
			RecipientAddress: economy.LightningAddress,
			InitiatedBy:      initiatedBy,
		}
		if err := repos.GetDisbursementRepository().Create(row); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to save disbursement")
		}
		saved++
	}

	log.Infof("funding saved for %s: %d pending disbursements, %d skipped", period.Key(), saved, skipped)

	return c.JSON(fiber.Map{
		"period":  period.Key(),
		"saved":   saved,
		"skipped": skipped,
	})
}

// HandleMerchantFunding returns the merchant-level breakdown for a period's
// calculated allocations.
func HandleMerchantFunding(c *fiber.Ctx) error {
	var req merchantFundingRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	period, err := funding.ParsePeriod(req.Period)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	repos := repository.GetGlobalFactory()

	cfg, err := funding.LoadConfig(repos.GetSettingRepository())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	ranked, err := loadRankedEconomies(period)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load rankings")
	}
	if len(ranked) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "no saved rankings for "+period.Key()+"; calculate rankings first")
	}

	allocation := funding.CalculateAllocation(ranked, cfg)

	distributor := funding.NewDistributor(repos.GetMerchantRepository())
	result, err := distributor.DistributeToMerchants(period, allocation.Allocations)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}

	return c.JSON(fiber.Map{
		"period": period.Key(),
		"result": result,
	})
}

// loadRankedEconomies rebuilds the allocator input from the persisted
// ranking rows of a period.
func loadRankedEconomies(period funding.Period) ([]funding.RankedEconomy, error) {
	repos := repository.GetGlobalFactory()
	rows, err := repos.GetRankingRepository().GetForPeriod(period.Key())
	if err != nil {
		return nil, err
	}

	ranked := make([]funding.RankedEconomy, 0, len(rows))
	for _, row := range rows {
		r := funding.RankedEconomy{
			EconomyID:         row.EconomyID,
			ApprovedVideos:    row.ApprovedVideos,
			DistinctMerchants: row.DistinctMerchants,
			NewMerchants:      row.NewMerchants,
			TotalScore:        row.TotalScore,
			OverallRank:       row.OverallRank,
		}
		if row.Economy != nil {
			r.EconomyName = row.Economy.Name
		}
		ranked = append(ranked, r)
	}
	return ranked, nil
}
