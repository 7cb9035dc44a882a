package scoring

// DefaultCriteria returns the standard criteria table with the given weights.
func DefaultCriteria(w Weights) []Criterion {
	criteria := []Criterion{
		&GHGIntensityCriterion{MaxPoints: w[KeyGHGIntensity]},
		&RenewableEnergyCriterion{MaxPoints: w[KeyRenewableEnergy]},
		&ClimateTargetsCriterion{MaxPoints: w[KeyClimateTargets]},
		&WasteManagementCriterion{MaxPoints: w[KeyWasteManagement]},
		&WaterManagementCriterion{MaxPoints: w[KeyWaterManagement]},

		&HealthSafetyCriterion{MaxPoints: w[KeyHealthSafety]},
		&TrainingDevelopmentCriterion{MaxPoints: w[KeyTrainingDevelopment]},
		&DiversityInclusionCriterion{MaxPoints: w[KeyDiversityInclusion]},
		&FlagCriterion{
			CriterionKey:  KeyFairWages,
			CriterionName: "Fair wages",
			Pillar:        Social,
			MaxPoints:     w[KeyFairWages],
			Satisfied:     func(in *Input) bool { return in.LivingWageCommitment },
			Met:           "Living wage commitment",
			Missing:       "No living wage commitment",
		},
	}
	return append(criteria, governanceCriteria(w)...)
}
