package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/burnrate/internal/model"
)

func benchDataset(nClients, nMembers, nEntries int) Dataset {
	var ds Dataset
	for i := 0; i < nClients; i++ {
		ds.Clients = append(ds.Clients, model.Client{
			ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("Client %d", i),
			MonthlyRetainer: 5000, IsActive: true,
		})
	}
	for i := 0; i < nMembers; i++ {
		ds.Members = append(ds.Members, model.TeamMember{
			ID: fmt.Sprintf("m%d", i), CostRate: 50 + float64(i),
		})
	}
	for i := 0; i < nEntries; i++ {
		ds.Entries = append(ds.Entries, model.TimeEntry{
			ID:           fmt.Sprintf("e%d", i),
			ClientID:     fmt.Sprintf("c%d", i%nClients),
			TeamMemberID: fmt.Sprintf("m%d", i%nMembers),
			Date:         model.NewDate(2025, time.June, 1+i%30),
			Hours:        2.5,
		})
	}
	return ds
}

func BenchmarkComputeProfitability(b *testing.B) {
	ds := benchDataset(1, 20, 10_000)
	month := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ComputeProfitability(ds.Clients[0], ds.Entries, ds.Members, month, month)
	}
}

func BenchmarkBuildReport(b *testing.B) {
	ds := benchDataset(50, 20, 20_000)
	month := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildReport(ds, month, month)
	}
}
