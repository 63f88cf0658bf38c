package model

type RewardType string

const (
	RewardStory   RewardType = "STORY"
	RewardVoucher RewardType = "VOUCHER"
	RewardAudio   RewardType = "AUDIO"
)

func (t RewardType) Valid() bool {
	switch t {
	case RewardStory, RewardVoucher, RewardAudio:
		return true
	}
	return false
}

// SuggestedRewardType maps a quest category to the reward type the admin
// panel pre-selects. Any type may still be attached to any quest.
func SuggestedRewardType(category QuestCategory) RewardType {
	switch category {
	case CategoryCulinary:
		return RewardVoucher
	case CategoryNature:
		return RewardAudio
	default:
		return RewardStory
	}
}

// Reward is unlockable content attached to a quest. Exactly which payload
// field is populated depends on Type.
type Reward struct {
	ID          int64
	QuestID     int64
	Type        RewardType
	ContentText *string
	MediaURL    *string
	VoucherCode *string
}

// UserReward is a reward joined with its quest title, as shown in the
// player's inventory.
type UserReward struct {
	Reward
	QuestTitle string
}
