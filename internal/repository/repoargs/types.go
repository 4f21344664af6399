package repoargs

type RepositoryName string

const (
	UserRepoName   RepositoryName = "user"
	WalletRepoName RepositoryName = "wallet"
	RoundRepoName  RepositoryName = "round"
	BetRepoName    RepositoryName = "bet"
	ResultRepoName RepositoryName = "result"
)
