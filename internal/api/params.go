package api

// Field sets requested from the API, mirroring what each command family
// needs. Kept as constants so commands stay declarative.
const (
	// TweetFieldsBasic is the minimal tweet projection used by list-style reads.
	TweetFieldsBasic = "created_at,author_id,text,public_metrics"

	// TweetFieldsConversation adds the conversation id, for search and timelines.
	TweetFieldsConversation = "created_at,author_id,conversation_id,text,public_metrics"

	// TweetFieldsThread adds reply metadata, for thread reconstruction.
	TweetFieldsThread = "created_at,author_id,in_reply_to_user_id,text,public_metrics"

	// TweetFieldsFull is the widest tweet projection, used by single-tweet lookups.
	TweetFieldsFull = "created_at,author_id,conversation_id,in_reply_to_user_id,text,public_metrics"

	// UserFieldsBasic is the author projection merged into tweets.
	UserFieldsBasic = "username,name"

	// UserFieldsPublic is the projection for users listed around a tweet.
	UserFieldsPublic = "username,name,public_metrics,verified"

	// UserFieldsDetailed adds the bio, for follower/following listings.
	UserFieldsDetailed = "username,name,public_metrics,description,verified"

	// UserFieldsProfile is the projection for profile lookups.
	UserFieldsProfile = "created_at,description,location,public_metrics,verified,url,pinned_tweet_id"

	// UserFieldsMe is the projection for the authenticated user's own profile.
	UserFieldsMe = "id,username,name,description,location,url,created_at,public_metrics,verified"

	// ListFields is the projection for list lookups.
	ListFields = "description,member_count,follower_count,created_at,private"

	// ListFieldsOwner adds the owner, for single-list lookups.
	ListFieldsOwner = ListFields + ",owner_id"

	// SpaceFields is the projection for Spaces search.
	SpaceFields = "title,host_ids,created_at,participant_count,state,lang"

	// SpaceFieldsScheduled adds the scheduled start, for single-Space lookups.
	SpaceFieldsScheduled = SpaceFields + ",scheduled_start"

	// DMEventFields is the projection for direct message events.
	DMEventFields = "id,text,event_type,created_at,sender_id,dm_conversation_id,attachments"

	// ExpandAuthor requests the author expansion merged by MergeAuthors.
	ExpandAuthor = "author_id"
)
