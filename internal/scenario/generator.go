package scenario

import (
	"context"
	"encoding/binary"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
	intake "github.com/okian/docket/internal/domain/intake"
	model "github.com/okian/docket/internal/domain/model"
	"github.com/okian/docket/pkg/logger"
)

const (
	maxAgeYears    = 30
	caseNoIDLength = 8
)

// intake form spellings, including the spaced vulnerable party names
var vulnerableForms = []string{"None", "None", "Woman", "Child", "Senior Citizen", "Disabled Person"}

// Generate creates n case records with unique case numbers. The same seed
// always produces the same records.
func Generate(ctx context.Context, n int, seed uint64) ([]intake.Record, error) {
	logger.Get().Info(ctx, "generating case records", logger.Int("numCases", n))

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	records := make([]intake.Record, 0, n)
	seen := make(map[string]struct{}, n)
	for len(records) < n {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return nil, err
		}
		caseNo := "CR-" + id.String()[:caseNoIDLength]
		if _, dup := seen[caseNo]; dup {
			continue
		}
		seen[caseNo] = struct{}{}

		records = append(records, intake.Record{
			intake.FieldCaseNo:     caseNo,
			intake.FieldOffense:    string(model.Offenses[rng.IntN(len(model.Offenses))]),
			intake.FieldVulnerable: vulnerableForms[rng.IntN(len(vulnerableForms))],
			intake.FieldAge:        strconv.Itoa(rng.IntN(maxAgeYears) + 1),
			intake.FieldBailMatter: yesNo(rng.IntN(2) == 1),
			intake.FieldUnderTrial: yesNo(rng.IntN(2) == 1),
		})
	}
	return records, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
