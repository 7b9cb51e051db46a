package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "assistant"
)

// ClarificationMessage is returned when a follow-up question cannot be
// anchored to any subject from the conversation history.
const ClarificationMessage = "Bạn muốn hỏi về môn học nào? Vui lòng cung cấp tên hoặc mã môn học để mình hỗ trợ chính xác nhé."

// IndexNotReadyMessage is streamed when the vector index is unavailable.
const IndexNotReadyMessage = "Vectorstore chưa sẵn sàng. Vui lòng ingest tài liệu trước."

// DefaultGreetingMessage is used when the greetings file provides none.
const DefaultGreetingMessage = "Xin chào! Tôi là Syllasbus-Bot. Tôi có thể giúp gì cho bạn?"

// SaveExchangeTopicName is the in-process topic carrying finished exchanges
// to the background persistence consumer.
const SaveExchangeTopicName = "SAVE_CHAT_EXCHANGE"
