package fixtures

// PasswordHash is the bcrypt hash shared by every fixture user.
// The plaintext is "password123". Regenerate with `hollow-seed hash-password`.
const PasswordHash = "$2a$10$1qcjIeVnv.L0Y2bfJMpFS.jaSB0jDigLyP1CBJ4Nd36KuTenWNski"

// placeholderPNG is a 1x1 transparent PNG used as avatar content.
const placeholderPNG = "\x89\x50\x4e\x47\x0d\x0a\x1a\x0a\x00\x00\x00\x0d\x49\x48\x44\x52" +
	"\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4" +
	"\x89\x00\x00\x00\x0b\x49\x44\x41\x54\x78\xda\x63\x60\x00\x02\x00" +
	"\x00\x05\x00\x01\xe9\xfa\xdc\xd8\x00\x00\x00\x00\x49\x45\x4e\x44" +
	"\xae\x42\x60\x82"

// anonymous marks a message without a sender
const anonymous = -1

type userDef struct {
	email string
}

type boxDef struct {
	name        string
	description string
	owner       int // index into userDefs
}

type messageDef struct {
	box       int // index into boxDefs
	sender    int // index into userDefs, or anonymous
	content   string
	likeCount int
	likedBy   []int // indexes into userDefs
}

type avatarDef struct {
	filename    string
	contentType string
	payload     string
}

var userDefs = [UserCount]userDef{
	{email: "test1@example.com"},
	{email: "test2@example.com"},
}

var boxDefs = [BoxCount]boxDef{
	{name: "心情分享盒子", description: "分享你今天的心情和感受", owner: 0},
	{name: "美食推荐盒子", description: "分享你最近吃到的美食", owner: 0},
	{name: "学习交流盒子", description: "分享你的学习经验和心得", owner: 1},
}

var messageDefs = [MessageCount]messageDef{
	{box: 0, sender: 1, content: "今天心情很好，完成了一个重要的项目！", likeCount: 2, likedBy: []int{0}},
	{box: 0, sender: anonymous, content: "最近压力有点大，但是在努力坚持。", likeCount: 1, likedBy: []int{1}},
	{box: 1, sender: 0, content: "推荐一家新开的火锅店，味道非常不错！", likeCount: 0, likedBy: []int{}},
}

// avatarDefs is indexed by user: avatarDefs[i] belongs to userDefs[i].
var avatarDefs = [AvatarCount]avatarDef{
	{filename: "avatar_test1.png", contentType: "image/png", payload: placeholderPNG},
	{filename: "avatar_test2.png", contentType: "image/png", payload: placeholderPNG},
}
