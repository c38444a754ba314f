package repository

import (
	"sync"
	"testing"

	"gorm.io/gorm"
)

func resetGlobalFactory() {
	globalFactory = nil
	factoryOnce = sync.Once{}
}

func TestGetGlobalFactoryPanicsBeforeInit(t *testing.T) {
	resetGlobalFactory()
	defer resetGlobalFactory()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when the factory is used before InitializeFactory")
		}
	}()
	GetGlobalFactory()
}

func TestInitializeFactoryWiresAllRepositories(t *testing.T) {
	resetGlobalFactory()
	defer resetGlobalFactory()

	InitializeFactory(&gorm.DB{})
	f := GetGlobalFactory()
	if f == nil {
		t.Fatal("expected a factory after InitializeFactory")
	}

	if f.GetUserRepository() == nil {
		t.Error("user repository not wired")
	}
	if f.GetEconomyRepository() == nil {
		t.Error("economy repository not wired")
	}
	if f.GetSubmissionRepository() == nil {
		t.Error("submission repository not wired")
	}
	if f.GetMerchantRepository() == nil {
		t.Error("merchant repository not wired")
	}
	if f.GetRankingRepository() == nil {
		t.Error("ranking repository not wired")
	}
	if f.GetDisbursementRepository() == nil {
		t.Error("disbursement repository not wired")
	}
	if f.GetSettingRepository() == nil {
		t.Error("setting repository not wired")
	}

	// A second call must keep the first instance.
	InitializeFactory(&gorm.DB{})
	if GetGlobalFactory() != f {
		t.Fatal("InitializeFactory replaced an already initialized factory")
	}
}
