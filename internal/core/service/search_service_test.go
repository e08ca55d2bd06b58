package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/usercore/account-service/internal/core/domain"
)

func seedUsers(repo *stubUserRepo, count int) {
	for i := 1; i <= count; i++ {
		account := fmt.Sprintf("tester%02d", i)
		repo.nextID++
		repo.users[account] = &domain.User{
			ID:             repo.nextID,
			Account:        account,
			Username:       fmt.Sprintf("Tester %02d", i),
			PasswordDigest: "digest",
		}
	}
}

func TestSearchService_FirstPage(t *testing.T) {
	repo := newStubUserRepo()
	seedUsers(repo, 25)
	svc := NewSearchService(repo, zerolog.Nop())

	page, err := svc.SearchByName(context.Background(), "Tester", 1, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Users) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(page.Users))
	}
	if page.TotalRows != 25 || page.TotalPages != 3 || page.Page != 1 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
}

func TestSearchService_PageOverflowCorrection(t *testing.T) {
	repo := newStubUserRepo()
	seedUsers(repo, 25)
	svc := NewSearchService(repo, zerolog.Nop())

	page, err := svc.SearchByName(context.Background(), "Tester", 99, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.Page != 3 {
		t.Fatalf("expected corrected page 3, got %d", page.Page)
	}
	if len(page.Users) != 5 {
		t.Fatalf("expected last page with 5 rows, got %d", len(page.Users))
	}
	if repo.pageCalls != 2 {
		t.Fatalf("expected re-issued query, got %d calls", repo.pageCalls)
	}
}

func TestSearchService_BlankNameMatchesEveryone(t *testing.T) {
	repo := newStubUserRepo()
	seedUsers(repo, 7)
	svc := NewSearchService(repo, zerolog.Nop())

	page, err := svc.SearchByName(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.TotalRows != 7 || len(page.Users) != 7 {
		t.Fatalf("blank name must match all rows: %+v", page)
	}
}

func TestSearchService_WhitespaceNameMatchesEveryone(t *testing.T) {
	repo := newStubUserRepo()
	seedUsers(repo, 3)
	svc := NewSearchService(repo, zerolog.Nop())

	for _, name := range []string{" ", "   ", "\t", " \n "} {
		page, err := svc.SearchByName(context.Background(), name, 1, 10)
		if err != nil {
			t.Fatalf("search %q failed: %v", name, err)
		}
		if page.TotalRows != 3 || len(page.Users) != 3 {
			t.Fatalf("whitespace name %q must match all rows, got total=%d rows=%d",
				name, page.TotalRows, len(page.Users))
		}
	}
}

func TestSearchService_NoMatches(t *testing.T) {
	repo := newStubUserRepo()
	seedUsers(repo, 5)
	svc := NewSearchService(repo, zerolog.Nop())

	page, err := svc.SearchByName(context.Background(), "nobodyatall", 1, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Users) != 0 || page.TotalRows != 0 || page.TotalPages != 0 {
		t.Fatalf("expected well-formed empty page, got %+v", page)
	}
	if repo.pageCalls != 1 {
		t.Fatalf("empty result must not trigger a re-query, got %d calls", repo.pageCalls)
	}
}

func TestSearchService_SanitizesRows(t *testing.T) {
	repo := newStubUserRepo()
	seedUsers(repo, 3)
	svc := NewSearchService(repo, zerolog.Nop())

	page, err := svc.SearchByName(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for _, u := range page.Users {
		if u.Account == "" || u.ID == 0 {
			t.Fatalf("safe fields missing from sanitized row: %+v", u)
		}
	}
}

func TestSearchService_DefaultsInvalidPaging(t *testing.T) {
	repo := newStubUserRepo()
	seedUsers(repo, 3)
	svc := NewSearchService(repo, zerolog.Nop())

	page, err := svc.SearchByName(context.Background(), "", 0, -5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.Page != 1 || page.PageSize != defaultPageSize {
		t.Fatalf("expected defaults applied, got page=%d size=%d", page.Page, page.PageSize)
	}
}
