package installer

// Stages returns the pipeline in its fixed total order. No stage may
// depend on a later stage's output.
func Stages() []Stage {
	return []Stage{
		basePackagesStage(),
		swapStage(),
		phpRepositoryStage(),
		phpPackagesStage(),
		databaseStage(),
		redisStage(),
		sourceCheckoutStage(),
		nodeToolingStage(),
		backendStage(),
		frontendStage(),
		subsServiceStage(),
		nginxStage(),
		supervisorStage(),
		cronStage(),
		bootstrapJobsStage(),
		adminUserStage(),
	}
}
