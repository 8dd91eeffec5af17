package billing

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// intentVersion tags the metadata layout. A webhook deploy that does not
// understand a session's version must refuse to guess.
const intentVersion = "1"

const (
	mdIntentVersion  = "intent_version"
	mdUserID         = "user_id"
	mdPlanID         = "plan_id"
	mdExtraSeats     = "extra_seats"
	mdStorageAddons  = "storage_addon_ids"
	mdProjectName    = "project_name"
	mdProjectNumber  = "project_number"
	mdAddress        = "address"
	mdCity           = "city"
	mdUpgradeProject = "upgrade_project_id"
)

// CheckoutIntent is everything the completion webhook needs to provision a
// paid project. It rides in the checkout session metadata, the only state the
// asynchronous callback can read, so every field must survive a string-only
// round trip.
type CheckoutIntent struct {
	UserID          uint
	PlanID          string
	ExtraSeats      int
	StorageAddonIDs []string
	ProjectName     string
	ProjectNumber   string
	Address         string
	City            string

	// UpgradeProjectID targets an existing project instead of creating one.
	// Empty means a fresh project.
	UpgradeProjectID string
}

func (i CheckoutIntent) Metadata() map[string]string {
	addonIDs := i.StorageAddonIDs
	if addonIDs == nil {
		addonIDs = []string{}
	}
	rawAddons, _ := json.Marshal(addonIDs)

	return map[string]string{
		mdIntentVersion:  intentVersion,
		mdUserID:         strconv.FormatUint(uint64(i.UserID), 10),
		mdPlanID:         i.PlanID,
		mdExtraSeats:     strconv.Itoa(i.ExtraSeats),
		mdStorageAddons:  string(rawAddons),
		mdProjectName:    i.ProjectName,
		mdProjectNumber:  i.ProjectNumber,
		mdAddress:        i.Address,
		mdCity:           i.City,
		mdUpgradeProject: i.UpgradeProjectID,
	}
}

func IntentFromMetadata(md map[string]string) (CheckoutIntent, error) {
	if len(md) == 0 {
		return CheckoutIntent{}, fmt.Errorf("decode checkout intent: metadata missing")
	}
	if v := md[mdIntentVersion]; v != intentVersion {
		return CheckoutIntent{}, fmt.Errorf("decode checkout intent: unsupported intent_version %q", v)
	}

	userID, err := strconv.ParseUint(md[mdUserID], 10, 64)
	if err != nil || userID == 0 {
		return CheckoutIntent{}, fmt.Errorf("decode checkout intent: bad user_id %q", md[mdUserID])
	}
	if md[mdPlanID] == "" {
		return CheckoutIntent{}, fmt.Errorf("decode checkout intent: plan_id missing")
	}

	extraSeats := 0
	if raw := md[mdExtraSeats]; raw != "" {
		extraSeats, err = strconv.Atoi(raw)
		if err != nil || extraSeats < 0 {
			return CheckoutIntent{}, fmt.Errorf("decode checkout intent: bad extra_seats %q", raw)
		}
	}

	var addonIDs []string
	if raw := md[mdStorageAddons]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &addonIDs); err != nil {
			return CheckoutIntent{}, fmt.Errorf("decode checkout intent: bad storage_addon_ids %q: %w", raw, err)
		}
	}

	return CheckoutIntent{
		UserID:           uint(userID),
		PlanID:           md[mdPlanID],
		ExtraSeats:       extraSeats,
		StorageAddonIDs:  addonIDs,
		ProjectName:      md[mdProjectName],
		ProjectNumber:    md[mdProjectNumber],
		Address:          md[mdAddress],
		City:             md[mdCity],
		UpgradeProjectID: md[mdUpgradeProject],
	}, nil
}
